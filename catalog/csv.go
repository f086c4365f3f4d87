package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rushteam/filmrec/core"
	"github.com/rushteam/filmrec/pkg/logging"
)

// CSVLoader 从带表头的 CSV 文件加载目录。
type CSVLoader struct {
	Path string
	// Comma 是字段分隔符，默认 ','
	Comma rune
}

// NewCSVLoader 创建 CSV 加载器
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{Path: path}
}

func (l *CSVLoader) Name() string { return "catalog.csv" }

func (l *CSVLoader) Load(ctx context.Context) (*Catalog, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "open catalog csv", err)
	}
	defer f.Close()

	c, err := ReadCSV(ctx, f, l.Comma)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.Path, err)
	}
	logging.Component("catalog").Info().
		Str("source", l.Path).
		Int("loaded", c.stats.Loaded).
		Int("dropped", c.stats.Dropped).
		Int("duplicates", c.stats.Duplicates).
		Msg("catalog loaded")
	return c, nil
}

// ReadCSV 从 r 读取 CSV 目录，comma 为 0 时使用 ','。
func ReadCSV(ctx context.Context, r io.Reader, comma rune) (*Catalog, error) {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog csv is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	parser, err := newRowParser(header)
	if err != nil {
		return nil, err
	}

	var (
		movies  []*core.Movie
		dropped int
	)
	for line := 2; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				dropped++
				continue
			}
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		m, ok := parser.parse(record)
		if !ok {
			dropped++
			continue
		}
		movies = append(movies, m)
	}

	return parser.build(movies, dropped), nil
}
