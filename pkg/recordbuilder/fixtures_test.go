package recordbuilder_test

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/buildkit/pkg/recordbuilder"
)

type Point struct {
	X, Y, Z float64
}

type PointBuilder struct{ *recordbuilder.Builder[Point] }

func NewPointBuilder() PointBuilder {
	return PointBuilder{recordbuilder.New[Point]()}
}

func (PointBuilder) Rebind(core *recordbuilder.Builder[Point]) PointBuilder {
	return PointBuilder{core}
}

func (b PointBuilder) As2DX10Y20() PointBuilder {
	b = recordbuilder.MustWith[PointBuilder, Point](b, func(p *Point) *float64 { return &p.X }, func() float64 { return 10 })
	return recordbuilder.MustWith[PointBuilder, Point](b, func(p *Point) *float64 { return &p.Y }, func() float64 { return 20 })
}

// NoRebindBuilder cannot rewrap a new engine.
type NoRebindBuilder struct{ *recordbuilder.Builder[Point] }

type BookCite struct {
	Author   string
	Title    string `default:"Rimas"`
	Year     int
	Pages    int `default:"120"`
	Free     bool
	Price    *float64
	Tags     []string      `default:"poetry,romanticism"`
	Link     string        `param:"URL"`
	Loan     time.Duration `default:"336h"`
	Internal string        `param:"-"`
}

type BookCiteBuilder struct{ *recordbuilder.Builder[BookCite] }

func NewBookCiteBuilder() *BookCiteBuilder {
	return &BookCiteBuilder{recordbuilder.New[BookCite]()}
}

func (*BookCiteBuilder) Rebind(core *recordbuilder.Builder[BookCite]) *BookCiteBuilder {
	return &BookCiteBuilder{core}
}

func (b *BookCiteBuilder) WithAuthor(first, last string) *BookCiteBuilder {
	return recordbuilder.MustWith[*BookCiteBuilder, BookCite](b,
		func(c *BookCite) *string { return &c.Author },
		func() string { return fmt.Sprintf("%s, %s.", last, strings.ToUpper(first[:1])) },
	)
}

func (b *BookCiteBuilder) WithFullAuthor(first, mid, last string) *BookCiteBuilder {
	return recordbuilder.MustWith[*BookCiteBuilder, BookCite](b,
		func(c *BookCite) *string { return &c.Author },
		func() string {
			return fmt.Sprintf("%s, %s. %s.", last, strings.ToUpper(first[:1]), strings.ToUpper(mid[:1]))
		},
	)
}

type WebBookCite struct {
	Cite    BookCite
	URL     string
	Year    int
	Initial rune
	Free    bool
	Price   *float64
}

type WebBookCiteBuilder struct{ *recordbuilder.Builder[*WebBookCite] }

func NewWebBookCiteBuilder() WebBookCiteBuilder {
	return WebBookCiteBuilder{recordbuilder.New[*WebBookCite]()}
}

func (WebBookCiteBuilder) Rebind(core *recordbuilder.Builder[*WebBookCite]) WebBookCiteBuilder {
	return WebBookCiteBuilder{core}
}

func (b WebBookCiteBuilder) WithCite() WebBookCiteBuilder {
	return recordbuilder.MustWith[WebBookCiteBuilder, *WebBookCite](b,
		func(c *WebBookCite) *BookCite { return &c.Cite },
		func() BookCite {
			return NewBookCiteBuilder().WithFullAuthor("Gustavo", "Adolfo", "Bécquer").MustBuild()
		},
	)
}

func (b WebBookCiteBuilder) WithURL(url string) WebBookCiteBuilder {
	next, err := recordbuilder.WithNamed[WebBookCiteBuilder, *WebBookCite](b, "URL", func() any { return url })
	if err != nil {
		panic(err)
	}
	return next
}

type DatedBookCite struct {
	Author string
	Year   int
}

var errFutureYear = errors.New("year is in the future")

func NewDatedBookCite(author string, year int) (DatedBookCite, error) {
	if year > 3000 {
		return DatedBookCite{}, errFutureYear
	}
	return DatedBookCite{Author: author, Year: year}, nil
}

type Tagged struct {
	Name string
	Tags []string
}

func NewTagged(name string, tags ...string) Tagged {
	return Tagged{Name: name, Tags: tags}
}

type Sized struct {
	Small uint8
	Tiny  int8
	Count int
	Size  uint
	Ratio float32
}
