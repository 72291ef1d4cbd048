package console

import (
	"strconv"
	"strings"
)

// Pagination — элемент управления страницами, вычисленный из {offset, count, limit}.
type Pagination struct {
	Current int
	Total   int
	Limit   int
}

func NewPagination(offset, total, limit int) Pagination {
	if limit <= 0 {
		limit = PageLimit
	}
	if offset < 0 {
		offset = 0
	}
	if total < 0 {
		total = 0
	}

	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return Pagination{
		Current: offset/limit + 1,
		Total:   pages,
		Limit:   limit,
	}
}

func (p Pagination) HasPrev() bool { return p.Current > 1 }
func (p Pagination) HasNext() bool { return p.Current < p.Total }

// String рисует « 1 [2] 3 ». Длинные ряды сворачиваются до первой, последней
// и двух соседних с текущей страниц.
func (p Pagination) String() string {
	last := p.Total
	if p.Current > last {
		// после удаления последней строки текущая страница может оказаться за концом
		last = p.Current
	}

	var b strings.Builder
	b.WriteString("«")
	prev := 0
	for _, i := range visiblePages(p.Current, last) {
		if i > prev+1 {
			b.WriteString(" …")
		}
		prev = i
		b.WriteString(" ")
		if i == p.Current {
			b.WriteString("[" + strconv.Itoa(i) + "]")
		} else {
			b.WriteString(strconv.Itoa(i))
		}
	}
	b.WriteString(" »")
	return b.String()
}

// visiblePages — номера страниц по возрастанию без повторов.
// До 9 страниц показываются все, дальше 1, current±2 и last.
func visiblePages(current, last int) []int {
	if last <= 9 {
		pages := make([]int, 0, last)
		for i := 1; i <= last; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	pages := []int{1}
	lo, hi := max(current-2, 2), min(current+2, last-1)
	for i := lo; i <= hi; i++ {
		pages = append(pages, i)
	}
	return append(pages, last)
}
