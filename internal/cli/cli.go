// Package cli командная строка fincalc: калькуляторы, хеш пароля администратора
// и проверка живости сервера по gRPC.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd собирает дерево команд. Каждый вызов возвращает новое дерево с
// собственными флагами.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fincalc",
		Short:         "Калькуляторы личных финансов",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCalculatorCmds()...)
	root.AddCommand(newHashPasswordCmd())
	root.AddCommand(newHealthCmd())
	return root
}
