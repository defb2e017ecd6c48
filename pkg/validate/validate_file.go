package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// DetectFormat — формат по расширению файла; неизвестное расширение считается JSON.
func DetectFormat(filePath string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.ToLower(filepath.Ext(filePath)) == ".jsonl" {
		return FormatJSONL
	}
	return FormatJSON
}

// CheckFile — проверяет файл с заказами и пишет отчёты в writer.
func (c *Checker) CheckFile(ctx context.Context, filePath string, format InputFormat, ow io.Writer) (Summary, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return c.CheckReader(ctx, file, DetectFormat(filePath, format), ow)
}

// CheckReader — то же для произвольного reader'а (stdin). FormatAuto здесь означает JSONL.
func (c *Checker) CheckReader(ctx context.Context, ir io.Reader, format InputFormat, ow io.Writer) (Summary, error) {
	switch format {
	case FormatJSONL, FormatAuto:
		return c.CheckJSONLStream(ctx, ir, ow)
	case FormatJSON:
		raw, err := io.ReadAll(ir)
		if err != nil {
			return Summary{}, fmt.Errorf("read input: %w", err)
		}
		return c.checkJSON(ctx, raw, ow)
	default:
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// checkJSON — один объект или массив заказов; Line в отчёте — позиция в массиве, с 1.
func (c *Checker) checkJSON(ctx context.Context, raw []byte, ow io.Writer) (Summary, error) {
	var sum Summary

	trimmed := bytes.TrimSpace(raw)
	items := []json.RawMessage{trimmed}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		items = nil
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return sum, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
	}

	for i, item := range items {
		rep, err := c.check(ctx, i+1, item, &sum)
		if err != nil {
			return sum, err
		}
		if err := writeReport(ow, rep); err != nil {
			return sum, err
		}
	}
	return sum, nil
}
