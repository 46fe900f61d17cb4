package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashStrings 返回多组字符串的稳定 hash，用于判断输入内容是否变化。
// 组与组之间、元素与元素之间都写入分隔符。
func HashStrings(groups ...[]string) string {
	h := sha256.New()
	for _, group := range groups {
		for _, s := range group {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	return hex.EncodeToString(h.Sum(nil))
}
