// Пакет migrations — SQL-миграции схемы (goose), вшитые в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
