package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// CheckJSONLStream — читает JSONL из reader'а и пишет по строке-отчёту на каждый заказ.
// Пустые строки пропускаются, номер строки в отчёте — номер во входе.
func (c *Checker) CheckJSONLStream(ctx context.Context, ir io.Reader, ow io.Writer) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		rep, err := c.check(ctx, line, lineBytes, &sum)
		if err != nil {
			return sum, err
		}
		if err := writeReport(ow, rep); err != nil {
			return sum, err
		}
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("scan: %w", err)
	}
	return sum, nil
}

func writeReport(ow io.Writer, rep Report) error {
	b, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	b = append(b, '\n')
	if _, err := ow.Write(b); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
