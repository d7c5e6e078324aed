package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// GooseLogger routes goose migration output into a Logger.
type GooseLogger struct {
	L Logger
}

func (g GooseLogger) Printf(format string, v ...any) {
	g.L.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (g GooseLogger) Fatalf(format string, v ...any) {
	g.L.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
	os.Exit(1)
}
