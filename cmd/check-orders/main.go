package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Gunvolt24/order_rules/internal/rules"
	"github.com/Gunvolt24/order_rules/pkg/validate"
)

// CLI-приложение: проверка заказов из файла или stdin встроенными правилами.
// Каждая строка вывода — JSON-отчёт по одному заказу, итоги пишутся в stderr.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	rulesStr := flag.String("rules", "", "comma-separated rule names (default: all registered rules)")
	listOnly := flag.Bool("list", false, "print available rules and exit")
	flag.Parse()

	if err := run(*inputPath, validate.InputFormat(*formatStr), *rulesStr, *listOnly, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "check-orders: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string, format validate.InputFormat, rulesStr string, listOnly bool, in io.Reader, out, errOut io.Writer) error {
	ctx := context.Background()

	registry, err := rules.NewDefaultRegistry(nil)
	if err != nil {
		return err
	}

	if listOnly {
		for _, info := range registry.List() {
			fmt.Fprintf(out, "%s\t%s\n", info.Name, info.Description)
		}
		return nil
	}

	names, err := parseRuleNames(registry, rulesStr)
	if err != nil {
		return err
	}

	checker := validate.NewChecker(validate.NewOrderValidator(), rules.NewEngine(registry, nil), names)

	var summary validate.Summary
	if inputPath == "" {
		summary, err = checker.CheckReader(ctx, in, format, out)
	} else {
		summary, err = checker.CheckFile(ctx, inputPath, format, out)
	}
	if err != nil {
		return fmt.Errorf("%w (%s)", err, summary)
	}

	fmt.Fprintf(errOut, "check ok (%s)\n", summary)
	return nil
}

// parseRuleNames — имена из флага; пусто — все зарегистрированные.
// Неизвестное имя прерывает запуск до чтения входа.
func parseRuleNames(registry *rules.Registry, raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return registry.Names(), nil
	}

	var names, unknown []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !registry.Exists(name) {
			unknown = append(unknown, name)
		}
		names = append(names, name)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("invalid rule(s): %s. available rules: %s",
			strings.Join(unknown, ", "), strings.Join(registry.Names(), ", "))
	}
	if len(names) == 0 {
		return registry.Names(), nil
	}
	return names, nil
}
