package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/magabrotheeeer/finance-calculator/internal/grpc/client"
	"github.com/magabrotheeeer/finance-calculator/internal/grpc/server"
)

const statusServing = "SERVING"

// dialOptions подменяется в тестах для подключения через bufconn.
var dialOptions []grpc.DialOption

func newHealthCmd() *cobra.Command {
	var (
		addr    string
		service string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Проверить сервер через grpc.health.v1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client.NewHealthClient(addr, dialOptions...)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			status, err := c.Check(ctx, service)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			if status != statusServing {
				return fmt.Errorf("service %q is %s", service, status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:50051", "адрес gRPC-сервера")
	cmd.Flags().StringVar(&service, "service", server.ServiceName, "имя проверяемого сервиса")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "таймаут проверки")
	return cmd
}
