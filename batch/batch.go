// Package batch reads label specs from an xlsx workbook, one label per row,
// and writes template workbooks in the same layout.
package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ByLCY/tm2label/label"
	"github.com/ByLCY/tm2label/layout"
)

// Header 为导入/导出模板的表头，列顺序即导出顺序。
var Header = []string{
	"Name",
	"Type",
	"Tape",
	"Text",
	"Length",
	"Category",
	"Shielded",
	"Core",
	"Auto Length",
	"Margin",
}

// Row 是表格中的一行，Data 保存整行（按小写表头）供 Text 中的 ${列名} 占位符使用。
type Row struct {
	Line int
	Spec label.Spec
	Data map[string]string
}

// Read 读取 sheet（为空时取第一个工作表），跳过空行；错误信息包含行号。
func Read(r io.Reader, sheet string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalizeHeader(h)
	}

	out := make([]Row, 0, len(rows)-1)
	for idx := 1; idx < len(rows); idx++ {
		line := idx + 1
		data := make(map[string]string, len(header))
		empty := true
		for col, cell := range rows[idx] {
			if col >= len(header) || header[col] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			data[header[col]] = cell
		}
		if empty {
			continue
		}
		spec, err := rowSpec(data)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("row-%d", line)
		}
		out = append(out, Row{Line: line, Spec: spec, Data: data})
	}
	return out, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(h)
}

func rowSpec(data map[string]string) (label.Spec, error) {
	spec := label.DefaultSpec()
	spec.Name = data["name"]
	spec.Tape = data["tape"] // 为空时由调用方决定默认纸带

	if v := data["length"]; v != "" {
		spec.LAN.Length = v
	}
	if v := data["category"]; v != "" {
		spec.LAN.Category = v
	}
	if v := data["shielded"]; v != "" {
		s, err := label.ParseShield(v)
		if err != nil {
			return spec, err
		}
		spec.LAN.Shielded = s
	}
	if v := data["core"]; v != "" {
		c, err := label.ParseCore(v)
		if err != nil {
			return spec, err
		}
		spec.LAN.Core = c
	}
	if v := data["auto-length"]; v != "" {
		b, err := parseYesNo(v)
		if err != nil {
			return spec, err
		}
		spec.AutoLength = b
	}
	if v := data["margin"]; v != "" {
		l, err := layout.ParseLength(v)
		if err != nil {
			return spec, err
		}
		spec.Margin = l.MM()
	}
	spec.Text = data["text"]

	switch v := data["type"]; {
	case v != "":
		kind, err := label.ParseKind(v)
		if err != nil {
			return spec, err
		}
		spec.Kind = kind
	case spec.Text != "":
		spec.Kind = label.KindPlain
	default:
		spec.Kind = label.KindLAN
	}
	return spec, nil
}

func parseYesNo(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: auto length must be yes/no or true/false, got %q", label.ErrInvalidParam, v)
	}
	return b, nil
}

// Write 生成与 Read 对应的工作簿；specs 为空时只写表头，可作为导入模板。
func Write(w io.Writer, specs []label.Spec) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Labels"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	for col, h := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, s := range specs {
		values := []any{
			s.Name,
			string(s.Kind),
			s.Tape,
			s.Text,
			s.LAN.Length,
			s.LAN.Category,
			string(s.LAN.Shielded),
			string(s.LAN.Core),
			yesNo(s.AutoLength),
			strconv.FormatFloat(s.Margin, 'f', -1, 64),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
