package membership

// DefaultPageSize 成员表每页行数
const DefaultPageSize = 10

// Span 半开区间 [Lo,Hi)
type Span struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

func (s Span) Len() int { return s.Hi - s.Lo }

// Page 某一页在两组上的窗口
type Page struct {
	Number            int  `json:"page"`
	Size              int  `json:"pageSize"`
	TotalPages        int  `json:"totalPages"`
	Total             int  `json:"total"`
	With              Span `json:"with"`
	Without           Span `json:"without"`
	ShowWithHeader    bool `json:"showWithHeader"`
	ShowWithoutHeader bool `json:"showWithoutHeader"`
	Empty             bool `json:"empty"`
	HasPrev           bool `json:"hasPrev"`
	HasNext           bool `json:"hasNext"`
}

// Rows 本页行数，恒 <= Size
func (p Page) Rows() int { return p.With.Len() + p.Without.Len() }

func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage 限制在 [1, max(total,1)]
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Window 在 withRole(W) ++ withoutRole(N) 这个概念列表上取第 page 页。
// page 按原值计算，不做钳制；超出范围的页两组都为空。
func Window(w, n, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := w + n
	p := Page{
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: TotalPages(total, size),
		Empty:      total == 0,
	}

	start := (page - 1) * size
	end := start + size

	p.With = Span{Lo: min(start, w), Hi: min(end, w)}

	remaining := size - p.With.Len()
	lo := min(max(0, start-w), n)
	p.Without = Span{Lo: lo, Hi: min(lo+remaining, n)}

	p.ShowWithHeader = p.With.Len() > 0
	p.ShowWithoutHeader = p.Without.Len() > 0
	p.HasPrev = page > 1 && p.TotalPages > 0
	p.HasNext = p.TotalPages > 0 && page < p.TotalPages
	return p
}

// Next 末页或无数据时原样返回
func Next(page, totalPages int) int {
	if totalPages == 0 || page >= totalPages {
		return ClampPage(page, totalPages)
	}
	return page + 1
}

// Prev 首页时原样返回
func Prev(page, totalPages int) int {
	if page <= 1 {
		return 1
	}
	return ClampPage(page-1, totalPages)
}
