// Copyright (C) 2025 sage-x-project
// SPDX-License-Identifier: LGPL-3.0-or-later

package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	adkerrors "github.com/sage-x-project/agentmail/pkg/errors"
)

// Writer serializes writes into the archive's git repository. Commits
// are staged in memory (a plain path→bytes map) and only touch disk
// once the caller has already committed its relational transaction
// (design note §9: "stage the git tree in memory and commit only after
// the relational commit succeeds"). A single internal mutex serializes
// commits, matching the single-writer resource rule (spec.md §5).
type Writer struct {
	mu         sync.Mutex
	repoPath   string
	repo       *git.Repository
	authorName string
	authorEmail string
}

// Staged collects the files one logical operation will write, keyed by
// path relative to the archive repository root.
type Staged struct {
	files map[string][]byte
}

// NewStaged returns an empty staging set.
func NewStaged() *Staged {
	return &Staged{files: make(map[string][]byte)}
}

// Put adds or replaces one staged file.
func (s *Staged) Put(path string, content []byte) {
	s.files[path] = content
}

// Open opens (or initializes, with one empty initial commit) the
// archive git repository beneath dataDir/archive.
func Open(dataDir, authorName, authorEmail string) (*Writer, error) {
	repoPath := filepath.Join(dataDir, RootDir)

	repo, err := git.PlainOpen(repoPath)
	if err == git.ErrRepositoryNotExists {
		if mkErr := os.MkdirAll(repoPath, 0o755); mkErr != nil {
			return nil, adkerrors.ErrArchiveWrite.Wrap(mkErr)
		}
		repo, err = git.PlainInit(repoPath, false)
		if err != nil {
			return nil, adkerrors.ErrArchiveWrite.Wrap(err)
		}
		w := &Writer{repoPath: repoPath, repo: repo, authorName: authorName, authorEmail: authorEmail}
		if err := w.initialCommit(); err != nil {
			return nil, err
		}
		return w, nil
	}
	if err != nil {
		return nil, adkerrors.ErrArchiveWrite.Wrap(err)
	}
	return &Writer{repoPath: repoPath, repo: repo, authorName: authorName, authorEmail: authorEmail}, nil
}

func (w *Writer) initialCommit() error {
	keepPath := filepath.Join(w.repoPath, ".gitkeep")
	if err := os.WriteFile(keepPath, []byte("agentmail archive\n"), 0o644); err != nil {
		return adkerrors.ErrArchiveWrite.Wrap(err)
	}
	wt, err := w.repo.Worktree()
	if err != nil {
		return adkerrors.ErrArchiveWrite.Wrap(err)
	}
	if _, err := wt.Add(".gitkeep"); err != nil {
		return adkerrors.ErrArchiveWrite.Wrap(err)
	}
	_, err = wt.Commit("init archive", &git.CommitOptions{Author: w.signature()})
	if err != nil {
		return adkerrors.ErrArchiveWrite.Wrap(err)
	}
	return nil
}

func (w *Writer) signature() *object.Signature {
	return &object.Signature{Name: w.authorName, Email: w.authorEmail, When: time.Now()}
}

// Commit writes every staged file to disk, adds it to the worktree,
// and commits once with the given message line (spec.md §4.7 commit
// message format: "{op} {entity-kind} {id} in {project-slug}"). On any
// failure it removes the files it wrote and returns an ArchiveWriteError
// so the caller can run its compensating relational delete (spec.md
// §4.1 step 4).
func (w *Writer) Commit(staged *Staged, message string) (err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	written := make([]string, 0, len(staged.files))
	defer func() {
		if err != nil {
			for _, p := range written {
				os.Remove(filepath.Join(w.repoPath, p))
			}
		}
	}()

	for relPath, content := range staged.files {
		full := filepath.Join(w.repoPath, relPath)
		if mkErr := os.MkdirAll(filepath.Dir(full), 0o755); mkErr != nil {
			return adkerrors.ErrArchiveWrite.Wrap(mkErr)
		}
		if wErr := os.WriteFile(full, content, 0o644); wErr != nil {
			return adkerrors.ErrArchiveWrite.Wrap(wErr)
		}
		written = append(written, relPath)
	}

	wt, wtErr := w.repo.Worktree()
	if wtErr != nil {
		return adkerrors.ErrArchiveWrite.Wrap(wtErr)
	}
	for _, relPath := range written {
		if _, addErr := wt.Add(relPath); addErr != nil {
			return adkerrors.ErrArchiveWrite.Wrap(addErr)
		}
	}

	if _, commitErr := wt.Commit(message, &git.CommitOptions{Author: w.signature()}); commitErr != nil {
		return adkerrors.ErrArchiveWrite.Wrap(commitErr)
	}
	return nil
}

// CommitMessageLine builds the deterministic commit message line
// (spec.md §4.7).
func CommitMessageLine(op, entityKind string, id int64, projectSlug string) string {
	return fmt.Sprintf("%s %s %d in %s", op, entityKind, id, projectSlug)
}
