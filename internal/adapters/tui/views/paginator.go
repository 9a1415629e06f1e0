package views

// Paginator tracks the selected row of a paged list. The visible page is
// derived from the cursor rather than tracked separately, so stepping the
// cursor across a page boundary and jumping a whole page are the same
// movement at different strides.
type Paginator struct {
	size   int
	cursor int
	total  int
}

// NewPaginator creates a paginator with the given page size.
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 10
	}
	return &Paginator{size: size}
}

// SetTotal sets the number of items and pulls the cursor back into range
// if the list shrank under it.
func (p *Paginator) SetTotal(total int) {
	p.total = total
	if p.cursor >= total {
		p.cursor = total - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Cursor returns the absolute index of the selected row.
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the selection up one row. Reports whether it moved.
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	return true
}

// CursorDown moves the selection down one row. Reports whether it moved.
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	return true
}

// page returns the zero-based page the cursor is on.
func (p *Paginator) page() int {
	return p.cursor / p.size
}

// CurrentPage returns the one-based page number.
func (p *Paginator) CurrentPage() int {
	return p.page() + 1
}

// TotalPages returns the page count. An empty list still has one page.
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.size - 1) / p.size
}

// VisibleRange returns the half-open index range of the current page.
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.page() * p.size
	end = start + p.size
	if end > p.total {
		end = p.total
	}
	return start, end
}

// NextPage jumps the cursor to the start of the next page. Reports
// whether there was one.
func (p *Paginator) NextPage() bool {
	target := (p.page() + 1) * p.size
	if target >= p.total {
		return false
	}
	p.cursor = target
	return true
}

// PrevPage jumps the cursor to the start of the previous page. Reports
// whether there was one.
func (p *Paginator) PrevPage() bool {
	if p.page() == 0 {
		return false
	}
	p.cursor = (p.page() - 1) * p.size
	return true
}

// Reset returns the paginator to an empty initial state.
func (p *Paginator) Reset() {
	p.cursor = 0
	p.total = 0
}
