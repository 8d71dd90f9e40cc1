package feed

import (
	"math"
	"strconv"
)

// PerPage 每页文章数，四个列表页共用同一常量
const PerPage = 10

// Pagination 分页元数据，供模板渲染上一页/下一页
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasNext     bool
	HasPrev     bool
	Total       int64
}

// ParsePage 解析 ?page= 参数，非数字按第 1 页处理。
// 数字越界（含小于 1）由 Paginate 收敛，这里原样放行
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// Paginate 根据总数和请求页码计算分页。越界页码（过大或小于 1）
// 收敛到最后一页，空结果集返回第 1 页，永远不会报错。
func Paginate(total int64, page int) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(PerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = totalPages
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
		Total:       total,
	}
}

// Offset 当前页在结果集中的偏移
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * PerPage
}
