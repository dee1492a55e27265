package page

import "github.com/wilhasse/go-litereader/format"

// fieldReader wraps a Cursor and keeps the first error; later reads are no-ops.
type fieldReader struct {
	c   *format.Cursor
	err error
}

func newFieldReader(p []byte, off int) *fieldReader {
	return &fieldReader{c: format.NewCursor(p, off)}
}

func (r *fieldReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *fieldReader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.U8()
	r.fail(err)
	return v
}

func (r *fieldReader) u16() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.U16()
	r.fail(err)
	return v
}

func (r *fieldReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.U32()
	r.fail(err)
	return v
}

func (r *fieldReader) skip(n int) {
	if r.err != nil {
		return
	}
	r.fail(r.c.Skip(n))
}

func (r *fieldReader) version(field string) format.FileFormatVersion {
	raw := r.u8()
	if r.err != nil {
		return 0
	}
	v, err := format.ParseFileFormatVersion(field, raw)
	r.fail(err)
	return v
}

func (r *fieldReader) schemaFormat() format.SchemaFormat {
	raw := r.u32()
	if r.err != nil {
		return 0
	}
	f, err := format.ParseSchemaFormat(raw)
	r.fail(err)
	return f
}

func (r *fieldReader) textEncoding() format.TextEncoding {
	raw := r.u32()
	if r.err != nil {
		return 0
	}
	e, err := format.ParseTextEncoding(raw)
	r.fail(err)
	return e
}

func (r *fieldReader) vacuumMode() bool {
	raw := r.u32()
	if r.err != nil {
		return false
	}
	on, err := format.ParseVacuumMode(raw)
	r.fail(err)
	return on
}
