package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tagtree/internal/config"
	"tagtree/internal/fileutil"
	"tagtree/internal/ledger"
	"tagtree/internal/logging"
	"tagtree/internal/services"
	"tagtree/internal/tagname"
)

// LockFileName is the flock target created inside the destination root while
// a run is in flight.
const LockFileName = ".tagtree.lock"

// Operation is one planned copy: a parsed source file and the destination
// path its fields map to.
type Operation struct {
	Source string
	Dest   string
	Record tagname.Record
}

// Organizer copies tagged files into the destination tree.
type Organizer struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *ledger.Store
}

// New constructs an organizer without a run ledger.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return NewWithLedger(cfg, logger, nil)
}

// NewWithLedger constructs an organizer that records runs to the given store.
// A nil store disables recording.
func NewWithLedger(cfg *config.Config, logger *slog.Logger, store *ledger.Store) *Organizer {
	return &Organizer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "organizer"),
		store:  store,
	}
}

// Plan lists the source directory and derives the destination path for every
// regular file in it, without touching the filesystem beyond the listing.
// The first malformed filename fails the whole plan.
func (o *Organizer) Plan(source, dest string) ([]Operation, error) {
	names, err := listFiles(source)
	if err != nil {
		return nil, err
	}

	ext := o.cfg.Organize.OutputExtension
	ops := make([]Operation, 0, len(names))
	for _, name := range names {
		rec, err := tagname.Parse(name)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "organizing", "parse filename", "", err)
		}
		ops = append(ops, Operation{
			Source: filepath.Join(source, name),
			Dest:   filepath.Join(dest, filepath.FromSlash(rec.RelDir()), rec.DestName(ext)),
			Record: rec,
		})
	}
	return ops, nil
}

// Run executes the organize operation: plan the copies, then create each
// destination directory and copy the file bytes and permission bits.
// Execution is sequential and aborts on the first failure.
func (o *Organizer) Run(ctx context.Context, source, dest string) (err error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "organizing", "create destination root", "", err)
	}

	lock := flock.New(filepath.Join(dest, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrTransient, "organizing", "acquire destination lock", "", err)
	}
	if !locked {
		return services.Wrap(
			services.ErrConfiguration,
			"organizing",
			"acquire destination lock",
			fmt.Sprintf("another run is organizing into %s", dest),
			nil,
		)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logger.Warn("failed to release destination lock", logging.Error(unlockErr))
		}
	}()

	started := time.Now()
	logger.Info(
		"starting organize run",
		logging.String("source", source),
		logging.String("dest", dest),
	)

	ops, err := o.Plan(source, dest)
	if err != nil {
		return err
	}

	var run *ledger.Run
	if o.store != nil {
		if run, err = o.store.BeginRun(ctx, source, dest); err != nil {
			logger.Warn("failed to record run start", logging.Error(err))
			run = nil
		}
	}

	copied := 0
	defer func() {
		if run == nil {
			return
		}
		status := ledger.StatusCompleted
		if err != nil {
			status = ledger.StatusFailed
		}
		if finishErr := o.store.FinishRun(ctx, run.ID, status, copied); finishErr != nil {
			logger.Warn("failed to record run completion", logging.Error(finishErr))
		}
	}()

	for _, op := range ops {
		if err = o.copyOne(ctx, logger, run, op); err != nil {
			return err
		}
		copied++
	}

	logger.Info(
		"organize run completed",
		logging.Int("files", copied),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func (o *Organizer) copyOne(ctx context.Context, logger *slog.Logger, run *ledger.Run, op Operation) error {
	if err := os.MkdirAll(filepath.Dir(op.Dest), 0o755); err != nil {
		return services.Wrap(services.ErrTransient, "organizing", "create destination directory", "", err)
	}

	if !o.cfg.Organize.OverwriteExisting {
		if _, err := os.Lstat(op.Dest); err == nil {
			return services.Wrap(
				services.ErrValidation,
				"organizing",
				"check destination",
				fmt.Sprintf("destination already exists: %s", op.Dest),
				nil,
			)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrTransient, "organizing", "check destination", "", err)
		}
	}

	if o.cfg.Organize.VerifyCopies {
		if err := fileutil.CopyFileVerified(op.Source, op.Dest); err != nil {
			return services.Wrap(services.ErrTransient, "organizing", "copy file", "", err)
		}
		if info, err := os.Stat(op.Source); err == nil {
			if err := os.Chmod(op.Dest, info.Mode().Perm()); err != nil {
				return services.Wrap(services.ErrTransient, "organizing", "preserve permissions", "", err)
			}
		}
	} else {
		if err := fileutil.CopyFilePreserve(op.Source, op.Dest); err != nil {
			return services.Wrap(services.ErrTransient, "organizing", "copy file", "", err)
		}
	}

	logger.Debug(
		"copied file",
		logging.String(logging.FieldSourceFile, op.Record.Original),
		logging.String(logging.FieldDestFile, op.Dest),
	)

	if run != nil {
		size := int64(0)
		if info, err := os.Stat(op.Dest); err == nil {
			size = info.Size()
		}
		if err := o.store.RecordFile(ctx, run.ID, op.Source, op.Dest, size); err != nil {
			logger.Warn("failed to record copied file", logging.Error(err))
		}
	}
	return nil
}
