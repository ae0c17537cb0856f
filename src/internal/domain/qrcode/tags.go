package qrcode

import (
	"slices"
	"strings"
)

// Tags QR Code 標籤集合
//
// 集合語意：去除空白、去除重複、丟棄空字串；以排序後的順序儲存，順序不影響相等性。
type Tags struct {
	values []string
}

// NewTags 建立標籤集合
func NewTags(raw []string) Tags {
	seen := make(map[string]struct{}, len(raw))
	values := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		values = append(values, t)
	}
	slices.Sort(values)
	return Tags{values: values}
}

// Values 返回排序後的標籤（副本）
func (t Tags) Values() []string {
	return slices.Clone(t.values)
}

// Contains 是否包含指定標籤
func (t Tags) Contains(tag string) bool {
	_, found := slices.BinarySearch(t.values, strings.TrimSpace(tag))
	return found
}

// Len 標籤數量
func (t Tags) Len() int {
	return len(t.values)
}

// Equals 集合相等
func (t Tags) Equals(other Tags) bool {
	return slices.Equal(t.values, other.values)
}
