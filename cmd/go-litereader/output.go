package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	litereader "github.com/wilhasse/go-litereader"
	"github.com/wilhasse/go-litereader/page"
	"github.com/wilhasse/go-litereader/record"
)

type pageView struct {
	Page           *litereader.Page
	Cells          []record.Cell
	CellError      string
	Freeblocks     []page.Freeblock
	FreeblockError string
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func headerMap(h litereader.FileHeader) map[string]any {
	return map[string]any{
		"page_size":                     h.PageSize,
		"write_version":                 h.WriteVersion.String(),
		"read_version":                  h.ReadVersion.String(),
		"reserved_space":                h.ReservedSpace,
		"max_embedded_payload_fraction": h.MaxEmbeddedPayloadFraction,
		"min_embedded_payload_fraction": h.MinEmbeddedPayloadFraction,
		"leaf_payload_fraction":         h.LeafPayloadFraction,
		"file_change_counter":           h.FileChangeCounter,
		"database_size":                 h.DatabaseSize,
		"freelist_trunk_page":           h.FreelistTrunkPage,
		"freelist_count":                h.FreelistCount,
		"schema_cookie":                 h.SchemaCookie,
		"schema_format":                 uint32(h.SchemaFormat),
		"default_page_cache_size":       h.DefaultPageCacheSize,
		"largest_root_page":             h.LargestRootPage,
		"text_encoding":                 h.TextEncoding.String(),
		"user_version":                  h.UserVersion,
		"incremental_vacuum":            h.IncrementalVacuum,
		"application_id":                h.ApplicationID,
		"version_valid_for":             h.VersionValidFor,
		"sqlite_version":                h.SQLiteVersionString(),
		"valid":                         h.IsValid(),
	}
}

func printHeader(w io.Writer, format string, h litereader.FileHeader) error {
	switch format {
	case "json":
		return writeJSON(w, headerMap(h))
	case "summary":
		_, err := fmt.Fprintf(w, "PageSize=%d, Pages=%d, Encoding=%s, Journal=%s, SQLite=%s\n",
			h.PageSize, h.DatabaseSize, h.TextEncoding, journalName(h), h.SQLiteVersionString())
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "=== File Header ===\n")
	fmt.Fprintf(tw, "  Page Size:\t%d\n", h.PageSize)
	fmt.Fprintf(tw, "  Write / Read Version:\t%s / %s\n", h.WriteVersion, h.ReadVersion)
	fmt.Fprintf(tw, "  Reserved Space:\t%d\n", h.ReservedSpace)
	fmt.Fprintf(tw, "  Payload Fractions:\t%d / %d / %d\n",
		h.MaxEmbeddedPayloadFraction, h.MinEmbeddedPayloadFraction, h.LeafPayloadFraction)
	fmt.Fprintf(tw, "  Change Counter:\t%d\n", h.FileChangeCounter)
	fmt.Fprintf(tw, "  Database Size:\t%d pages\n", h.DatabaseSize)
	fmt.Fprintf(tw, "  Freelist:\ttrunk %d, %d pages\n", h.FreelistTrunkPage, h.FreelistCount)
	fmt.Fprintf(tw, "  Schema Cookie / Format:\t%d / %s\n", h.SchemaCookie, h.SchemaFormat)
	fmt.Fprintf(tw, "  Default Cache Size:\t%d\n", h.DefaultPageCacheSize)
	fmt.Fprintf(tw, "  Largest Root Page:\t%d\n", h.LargestRootPage)
	fmt.Fprintf(tw, "  Text Encoding:\t%s\n", h.TextEncoding)
	fmt.Fprintf(tw, "  User Version:\t%d\n", h.UserVersion)
	fmt.Fprintf(tw, "  Incremental Vacuum:\t%v\n", h.IncrementalVacuum)
	fmt.Fprintf(tw, "  Application ID:\t0x%08x\n", h.ApplicationID)
	fmt.Fprintf(tw, "  Version Valid For:\t%d\n", h.VersionValidFor)
	fmt.Fprintf(tw, "  SQLite Version:\t%s (%d)\n", h.SQLiteVersionString(), h.SQLiteVersion)
	if !h.IsValid() {
		fmt.Fprintf(tw, "  WARNING:\tpayload fractions are not 64/32\n")
	}
	return tw.Flush()
}

func journalName(h litereader.FileHeader) string {
	if h.WriteVersion == litereader.VersionWAL {
		return "WAL"
	}
	return "rollback"
}

func pageMap(v pageView) map[string]any {
	p := v.Page
	f := p.BTree.Header.Common()
	out := map[string]any{
		"page_number":    p.PageNo,
		"page_type":      uint8(p.PageType()),
		"page_type_name": p.PageType().String(),
		"header_offset":  p.BTree.HeaderOffset,
		"header_size":    p.BTree.Header.Size(),
		"blake3":         p.Digest(),
	}
	if p.IsNull() {
		return out
	}
	out["freeblock_offset"] = f.FreeblockOffset
	out["cell_count"] = f.CellCount
	out["cell_content_offset"] = f.CellContentOffset
	out["fragmented_free_bytes"] = f.FragmentedFreeBytes
	out["cell_pointers"] = p.BTree.CellPointers
	out["unallocated_bytes"] = p.BTree.UnallocatedBytes()
	if right, ok := p.BTree.RightMostPointer(); ok {
		out["right_most_pointer"] = right
	}
	if v.Cells != nil {
		cells := make([]map[string]any, len(v.Cells))
		for i, c := range v.Cells {
			cells[i] = map[string]any{
				"offset":        c.Offset,
				"left_child":    c.LeftChild,
				"payload_size":  c.PayloadSize,
				"rowid":         c.RowID,
				"local_payload": c.LocalPayload,
				"overflow_page": c.OverflowPage,
				"size":          c.Size(),
			}
		}
		out["cells"] = cells
	}
	if v.CellError != "" {
		out["cell_error"] = v.CellError
	}
	if v.Freeblocks != nil {
		out["freeblocks"] = v.Freeblocks
	}
	if v.FreeblockError != "" {
		out["freeblock_error"] = v.FreeblockError
	}
	return out
}

func printPage(w io.Writer, format string, v pageView) error {
	p := v.Page
	switch format {
	case "json":
		return writeJSON(w, pageMap(v))
	case "summary":
		fmt.Fprintf(w, "Page %d: Type=%s", p.PageNo, p.PageType())
		if !p.IsNull() {
			fmt.Fprintf(w, ", Cells=%d, Unallocated=%d", len(p.BTree.CellPointers), p.BTree.UnallocatedBytes())
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	fmt.Fprintf(w, "=== Page %d ===\n", p.PageNo)
	fmt.Fprintf(w, "\nB-tree Header:\n")
	fmt.Fprintf(w, "  Page Type:      %s (0x%02x)\n", p.PageType(), uint8(p.PageType()))
	fmt.Fprintf(w, "  Header Offset:  %d (%d bytes)\n", p.BTree.HeaderOffset, p.BTree.Header.Size())
	fmt.Fprintf(w, "  BLAKE3:         %s\n", p.Digest())
	if p.IsNull() {
		fmt.Fprintf(w, "  (null page)\n")
		return nil
	}
	f := p.BTree.Header.Common()
	if f.FreeblockOffset != nil {
		fmt.Fprintf(w, "  First Freeblock: %d\n", *f.FreeblockOffset)
	} else {
		fmt.Fprintf(w, "  First Freeblock: NULL\n")
	}
	fmt.Fprintf(w, "  Cells:          %d\n", f.CellCount)
	fmt.Fprintf(w, "  Content Offset: %d\n", f.CellContentOffset)
	fmt.Fprintf(w, "  Fragmented:     %d bytes\n", f.FragmentedFreeBytes)
	if right, ok := p.BTree.RightMostPointer(); ok {
		fmt.Fprintf(w, "  Right-most:     %d\n", right)
	}
	fmt.Fprintf(w, "  Unallocated:    %d bytes\n", p.BTree.UnallocatedBytes())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if v.Cells != nil || v.CellError != "" {
		fmt.Fprintf(tw, "\nCells:\n")
		fmt.Fprintf(tw, "  #\tOffset\tChild\tPayload\tRowID\tLocal\tOverflow\n")
		for i, c := range v.Cells {
			fmt.Fprintf(tw, "  %d\t%d\t%s\t%s\t%s\t%d\t%d\n",
				i, c.Offset, optional(c.LeftChild), optional(c.PayloadSize), optional(c.RowID),
				c.LocalPayload, c.OverflowPage)
		}
		if v.CellError != "" {
			fmt.Fprintf(tw, "  Error:\t%s\n", v.CellError)
		}
	}
	if v.Freeblocks != nil || v.FreeblockError != "" {
		fmt.Fprintf(tw, "\nFreeblocks:\n")
		fmt.Fprintf(tw, "  Offset\tSize\tNext\n")
		for _, fb := range v.Freeblocks {
			fmt.Fprintf(tw, "  %d\t%d\t%d\n", fb.Offset, fb.Size, fb.Next)
		}
		if v.FreeblockError != "" {
			fmt.Fprintf(tw, "  Error:\t%s\n", v.FreeblockError)
		}
	}
	return tw.Flush()
}

func optional[T any](p *T) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprint(*p)
}

func printScan(w io.Writer, format string, res *litereader.ScanResult) error {
	counts := res.Counts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	switch format {
	case "json":
		return writeJSON(w, map[string]any{
			"header": headerMap(res.Header),
			"pages":  res.Pages,
			"counts": counts,
		})
	case "summary":
		fmt.Fprintf(w, "Pages=%d", len(res.Pages))
		for _, name := range names {
			fmt.Fprintf(w, ", %s=%d", name, counts[name])
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Page\tType\tCells\tFreeblocks\tUnallocated\tRight\tBLAKE3\n")
	for _, s := range res.Pages {
		if s.Err != nil {
			fmt.Fprintf(tw, "  %d\t-\t\t\t\t\t%.16s\t%s\n", s.PageNo, s.Digest, s.Error)
			continue
		}
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%d\t%d\t%s\t%.16s\n",
			s.PageNo, s.TypeName, s.CellCount, s.FreeblockCount, s.UnallocatedBytes,
			optional(s.RightMostPointer), s.Digest)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal: %d pages\n", len(res.Pages))
	for _, name := range names {
		fmt.Fprintf(w, "  %-15s %d\n", name, counts[name])
	}
	return nil
}

func printVarint(w io.Writer, format string, v uint64, n, avail int) error {
	switch format {
	case "json":
		return writeJSON(w, map[string]any{"value": v, "length": n, "trailing": avail - n})
	case "summary":
		_, err := fmt.Fprintf(w, "%d\n", v)
		return err
	}
	_, err := fmt.Fprintf(w, "Value:    %d (0x%x)\nLength:   %d bytes\nTrailing: %d bytes\n", v, v, n, avail-n)
	return err
}
