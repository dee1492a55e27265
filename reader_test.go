package litereader

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"
)

// syntheticImage builds a three-page, 512-byte-page image: page 1 is a leaf
// table holding the file header, page 2 is null and page 3 is garbage.
func syntheticImage(t *testing.T) []byte {
	t.Helper()
	const pageSize = 512
	img := make([]byte, 3*pageSize)
	copy(img, MagicString)
	binary.BigEndian.PutUint16(img[16:], pageSize)
	img[18], img[19] = 1, 1
	img[21], img[22], img[23] = 64, 32, 32
	binary.BigEndian.PutUint32(img[24:], 1) // change counter
	binary.BigEndian.PutUint32(img[28:], 3) // database size
	binary.BigEndian.PutUint32(img[44:], 4)
	binary.BigEndian.PutUint32(img[56:], 1)
	binary.BigEndian.PutUint32(img[92:], 1) // valid for

	// page 1 b-tree header after the file header, one cell at 500
	hdr := img[100:]
	hdr[0] = 0x0d
	binary.BigEndian.PutUint16(hdr[3:], 1)
	binary.BigEndian.PutUint16(hdr[5:], 500)
	binary.BigEndian.PutUint16(hdr[8:], 500)
	copy(img[500:], []byte{0x02, 0x01, 'h', 'i'})

	img[2*pageSize] = 0x42
	img[2*pageSize+1] = 0x42
	return img
}

func TestPageReaderReadPage(t *testing.T) {
	pr := NewPageReader(bytes.NewReader(syntheticImage(t)))
	if pr.Size() != 3*512 {
		t.Errorf("Size() = %d", pr.Size())
	}

	p1, err := pr.ReadPage(1)
	if err != nil {
		t.Fatalf("ReadPage(1) error = %v", err)
	}
	if p1.PageType() != PageTypeLeafTable || len(p1.Data) != 512 {
		t.Errorf("page 1 = %s, %d bytes", p1.PageType(), len(p1.Data))
	}
	cells, err := p1.Cells()
	if err != nil || len(cells) != 1 || *cells[0].RowID != 1 || *cells[0].PayloadSize != 2 {
		t.Errorf("Cells() = %+v, %v", cells, err)
	}

	p2, err := pr.ReadPage(2)
	if err != nil || !p2.IsNull() {
		t.Errorf("ReadPage(2) = %+v, %v; want null page", p2, err)
	}

	if _, err := pr.ReadPage(3); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("ReadPage(3) error = %v, want ErrUnknownValue", err)
	}
	if _, err := pr.ReadPage(0); err == nil {
		t.Error("ReadPage(0) succeeded")
	}
	if _, err := pr.ReadPage(4); err == nil {
		t.Error("ReadPage past end succeeded")
	}
}

func TestPageReaderHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrIncomplete},
		{"short header", syntheticImage(t)[:60], ErrIncomplete},
		{"not a database", []byte("PK\x03\x04 this is a zip file, honest"), ErrNotADatabaseFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPageReader(bytes.NewReader(tt.data)).ReadFileHeader()
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPageCountFallback(t *testing.T) {
	img := syntheticImage(t)
	binary.BigEndian.PutUint32(img[92:], 9) // stale: valid-for no longer matches
	binary.BigEndian.PutUint32(img[28:], 7)
	n, err := NewPageReader(bytes.NewReader(img)).PageCount()
	if err != nil || n != 3 {
		t.Errorf("PageCount() = %d, %v; want 3 from the file size", n, err)
	}
}

func TestScanSynthetic(t *testing.T) {
	res, err := Scan(context.Background(), NewPageReader(bytes.NewReader(syntheticImage(t))))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Pages) != 3 {
		t.Fatalf("scanned %d pages, want 3", len(res.Pages))
	}
	if res.Pages[0].TypeName != "leaf table" || res.Pages[0].CellCount != 1 {
		t.Errorf("page 1 = %+v", res.Pages[0])
	}
	if res.Pages[1].TypeName != "null" {
		t.Errorf("page 2 = %+v", res.Pages[1])
	}
	if res.Pages[2].Err == nil || res.Pages[2].Error == "" || res.Pages[2].Digest == "" {
		t.Errorf("page 3 = %+v, want a decode error with a digest", res.Pages[2])
	}
	counts := res.Counts()
	if counts["leaf table"] != 1 || counts["null"] != 1 || counts["error"] != 1 {
		t.Errorf("Counts() = %v", counts)
	}
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Scan(ctx, NewPageReader(bytes.NewReader(syntheticImage(t))))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if res == nil || len(res.Pages) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestPageDigest(t *testing.T) {
	a := PageDigest([]byte("page"))
	if len(a) != 64 || a != PageDigest([]byte("page")) || a == PageDigest([]byte("Page")) {
		t.Errorf("PageDigest() = %s", a)
	}
}
