package transform

import (
	"context"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/hashicorp/go-multierror"
	"github.com/minepkg/mcjar/internals/cmdlog"
)

// Merge writes a combined jar containing all entries of client and server to target.
// Entries present in both are taken from the client. Signatures are dropped
func Merge(ctx context.Context, client string, server string, target string, logger *cmdlog.Logger) error {
	logger = cmdlog.OrDiscard(logger)
	if err := ensureDir(target); err != nil {
		return err
	}

	lock := flock.New(target + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return err
	}
	if !locked {
		return fmt.Errorf("could not lock %s", target)
	}
	defer lock.Unlock()

	if err := merge(client, server, target); err != nil {
		if rmErr := os.Remove(target); rmErr != nil && !os.IsNotExist(rmErr) {
			err = multierror.Append(err, rmErr)
		}
		return err
	}
	logger.Debugf("merged %s and %s", client, server)
	return nil
}

func merge(client string, server string, target string) error {
	clientArchive, err := OpenArchive(client)
	if err != nil {
		return err
	}
	defer clientArchive.Close()

	serverArchive, err := OpenArchive(server)
	if err != nil {
		return err
	}
	defer serverArchive.Close()

	for _, name := range serverArchive.Entries() {
		if clientArchive.Has(name) {
			continue
		}
		if serverArchive.IsDir(name) {
			if err := clientArchive.Mkdir(name); err != nil {
				return err
			}
			continue
		}
		data, err := serverArchive.ReadFile(name)
		if err != nil {
			return err
		}
		if err := clientArchive.WriteFile(name, data); err != nil {
			return err
		}
	}

	clientArchive.RemoveDir("META-INF")
	return clientArchive.CommitTo(target)
}
