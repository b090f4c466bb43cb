package main

import (
	"context"
	"time"
)

func (cli *commandLine) prune(maxAge time.Duration) error {
	n, err := cli.sessions.Prune(context.Background(), maxAge)
	if err != nil {
		return err
	}
	cli.logger.Info("pruned session values", "count", n, "maxAge", maxAge.String())
	return nil
}
