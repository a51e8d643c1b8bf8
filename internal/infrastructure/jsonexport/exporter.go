package jsonexport

import (
	"context"
	"os"
	"strconv"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nba-stats-preprocess/internal/domain/playerstats"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/logging"
	"github.com/riskibarqy/nba-stats-preprocess/internal/platform/table"
	"github.com/valyala/bytebufferpool"
)

var (
	ErrNotSingleRow       = crerr.New("index orientation needs exactly one row")
	ErrUnknownOrientation = crerr.New("unknown json orientation")
)

const filePerm = 0o644

// Exporter writes tables as compact JSON documents. Keys follow column
// order, so identical tables always produce identical bytes.
type Exporter struct {
	logger *logging.Logger
}

func NewExporter(logger *logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Exporter{logger: logger}
}

func (e *Exporter) Export(ctx context.Context, path string, t *table.Table, orient playerstats.Orientation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := Encode(buf, t, orient); err != nil {
		return crerr.Wrapf(err, "encode %q", path)
	}
	if err := os.WriteFile(path, buf.B, filePerm); err != nil {
		return crerr.Wrapf(err, "write %q", path)
	}

	e.logger.DebugContext(ctx, "json written", "path", path, "orient", string(orient), "bytes", buf.Len())
	return nil
}

// Encode appends the JSON form of t to buf.
//
// records: [{"col":v,...},...] with one object per row.
// index:   {"col":v,...} for a table holding exactly one row.
func Encode(buf *bytebufferpool.ByteBuffer, t *table.Table, orient playerstats.Orientation) error {
	keys, err := encodeKeys(t.Columns())
	if err != nil {
		return err
	}

	switch orient {
	case playerstats.OrientRecords:
		buf.B = append(buf.B, '[')
		for i := 0; i < t.Len(); i++ {
			if i > 0 {
				buf.B = append(buf.B, ',')
			}
			if err := appendObject(buf, keys, t.Row(i).Values()); err != nil {
				return err
			}
		}
		buf.B = append(buf.B, ']')
		return nil
	case playerstats.OrientIndex:
		if t.Len() != 1 {
			return crerr.Wrapf(ErrNotSingleRow, "table has %d rows", t.Len())
		}
		return appendObject(buf, keys, t.Row(0).Values())
	default:
		return crerr.Wrapf(ErrUnknownOrientation, "%q", string(orient))
	}
}

// encodeKeys quotes every column name once; the same keys repeat on every row.
func encodeKeys(columns []string) ([][]byte, error) {
	keys := make([][]byte, len(columns))
	for i, column := range columns {
		encoded, err := sonic.ConfigStd.Marshal(column)
		if err != nil {
			return nil, crerr.Wrapf(err, "encode column name %q", column)
		}
		keys[i] = encoded
	}
	return keys, nil
}

func appendObject(buf *bytebufferpool.ByteBuffer, keys [][]byte, values []table.Value) error {
	buf.B = append(buf.B, '{')
	for i, v := range values {
		if i > 0 {
			buf.B = append(buf.B, ',')
		}
		buf.B = append(buf.B, keys[i]...)
		buf.B = append(buf.B, ':')
		if err := appendValue(buf, v); err != nil {
			return err
		}
	}
	buf.B = append(buf.B, '}')
	return nil
}

func appendValue(buf *bytebufferpool.ByteBuffer, v table.Value) error {
	switch v.Kind() {
	case table.KindNumber:
		f, _ := v.Float()
		buf.B = strconv.AppendFloat(buf.B, f, 'f', -1, 64)
	case table.KindString:
		s, _ := v.Str()
		encoded, err := sonic.ConfigStd.Marshal(s)
		if err != nil {
			return crerr.Wrapf(err, "encode string %q", s)
		}
		buf.B = append(buf.B, encoded...)
	default:
		buf.B = append(buf.B, "null"...)
	}
	return nil
}
