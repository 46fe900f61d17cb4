package app

import (
	"context"
	"fmt"
	"strconv"

	"commander/internal/bulk"
	"commander/internal/domain"
	"commander/internal/jamf"
)

// MoveRecords 把指定记录移动到 categoryID 对应的分类。
func (s *Service) MoveRecords(ctx context.Context, kind domain.RecordKind, ids []int, categoryID int) (bulk.Report, error) {
	if len(ids) == 0 {
		return bulk.Report{}, ErrNothingSelected
	}
	target, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return bulk.Report{}, err
	}
	items, err := s.mutateItems(ctx, kind, ids)
	if err != nil {
		return bulk.Report{}, err
	}
	if err := s.beginBulk(); err != nil {
		return bulk.Report{}, err
	}
	defer s.endBulk()
	return s.mutator.Move(ctx, kind, items, target), nil
}

// DeleteRecords 逐条删除指定记录。
func (s *Service) DeleteRecords(ctx context.Context, kind domain.RecordKind, ids []int) (bulk.Report, error) {
	if len(ids) == 0 {
		return bulk.Report{}, ErrNothingSelected
	}
	items, err := s.mutateItems(ctx, kind, ids)
	if err != nil {
		return bulk.Report{}, err
	}
	if err := s.beginBulk(); err != nil {
		return bulk.Report{}, err
	}
	defer s.endBulk()
	return s.mutator.Delete(ctx, kind, items), nil
}

func (s *Service) findCategory(ctx context.Context, id int) (jamf.Category, error) {
	cats, err := s.client.ListCategories(ctx)
	if err != nil {
		return jamf.Category{}, fmt.Errorf("获取分类失败: %w", err)
	}
	for _, c := range cats {
		if c.ID == id {
			return c, nil
		}
	}
	return jamf.Category{}, fmt.Errorf("分类 %d: %w", id, jamf.ErrNotFound)
}

// mutateItems 用补全后的记录为 id 找到名称和当前分类，找不到的 id 以数字作名称照常提交。
func (s *Service) mutateItems(ctx context.Context, kind domain.RecordKind, ids []int) ([]bulk.MutateItem, error) {
	records, err := s.Records(ctx, kind)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	items := make([]bulk.MutateItem, 0, len(ids))
	for _, id := range ids {
		item := bulk.MutateItem{ID: id, Name: strconv.Itoa(id)}
		if r, ok := byID[id]; ok {
			item.Name = r.Name
			item.Category = r.Category
		}
		items = append(items, item)
	}
	return items, nil
}
