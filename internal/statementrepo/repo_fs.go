// Package statementrepo manages storage of the exported CSV artifact.
package statementrepo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
)

// RepoFS stores the statement artifact on the local filesystem under a
// single fixed name. Exports for different accounts share the artifact; a
// new export overwrites the previous one.
type RepoFS struct {
	dir string
}

// NewRepoFS returns a statement store rooted at the given directory.
func NewRepoFS(dir string) *RepoFS {
	return &RepoFS{dir: dir}
}

// Path returns the full path of the artifact.
func (r *RepoFS) Path() string {
	return filepath.Join(r.dir, domain.StatementFileName)
}

// Write replaces the artifact with the given content. The content is
// written to a temporary file first and renamed into place, so a failed
// export never leaves a partial artifact behind.
func (r *RepoFS) Write(ctx context.Context, content string) error {
	l := zerolog.Ctx(ctx)

	tmp, err := os.CreateTemp(r.dir, domain.StatementFileName+".*")
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	if _, err := tmp.WriteString(content); err != nil {
		l.Error().Err(err).Send()
		tmp.Close()
		os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		l.Error().Err(err).Send()
		os.Remove(tmp.Name())

		return err
	}

	if err := os.Rename(tmp.Name(), r.Path()); err != nil {
		l.Error().Err(err).Send()
		os.Remove(tmp.Name())

		return err
	}

	return nil
}

// Read returns the artifact content verbatim.
func (r *RepoFS) Read(ctx context.Context) (string, error) {
	l := zerolog.Ctx(ctx)

	content, err := os.ReadFile(r.Path())
	if err != nil {
		l.Error().Err(err).Send()

		if os.IsNotExist(err) {
			return "", domain.ErrStatementNotFound
		}

		return "", domain.ErrStatementRead
	}

	return string(content), nil
}
