package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lexibase/lexi-core/internal/application/handlers"
	"github.com/lexibase/lexi-core/internal/domain/services"
	"github.com/lexibase/lexi-core/internal/infrastructure/authn"
	"github.com/lexibase/lexi-core/internal/infrastructure/config"
	"github.com/lexibase/lexi-core/internal/infrastructure/dictsource"
	embedder "github.com/lexibase/lexi-core/internal/infrastructure/embedder/openai"
	"github.com/lexibase/lexi-core/internal/infrastructure/entryindex/qdrant"
	"github.com/lexibase/lexi-core/internal/infrastructure/recordstore/sqlite"
)

// Deps holds high-level dependencies for commands. Only handlers are
// exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	EntryHandler  *handlers.EntryHandler
	NoteHandler   *handlers.NoteHandler
	LookupHandler *handlers.LookupHandler
	Source        *dictsource.Client
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	auth := authn.NewProfileAuthenticator(cfg.Profile)
	resolver := services.NewIdentityResolver(store)

	deps := &Deps{
		Config:        cfg,
		EntryHandler:  handlers.NewEntryHandler(resolver, store),
		NoteHandler:   handlers.NewNoteHandler(auth, resolver, store),
		LookupHandler: handlers.NewLookupHandler(auth, store),
		Source:        dictsource.NewClient(cfg.Source),
	}

	return fn(deps)
}

// withSearchDeps additionally builds the embedder and the qdrant entry
// index. Only the search and index commands pay the connection cost.
func withSearchDeps(fn func(*Deps, *handlers.SearchHandler) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	emb, err := embedder.NewEmbedder(cfg.Embedder)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	index, err := qdrant.NewRepository(cfg.Qdrant)
	if err != nil {
		return fmt.Errorf("creating qdrant repository: %w", err)
	}
	defer index.Close()

	if err := index.EnsureCollection(ctx, uint64(embedder.VectorSize)); err != nil {
		return fmt.Errorf("ensuring qdrant collection: %w", err)
	}

	auth := authn.NewProfileAuthenticator(cfg.Profile)
	resolver := services.NewIdentityResolver(store)

	deps := &Deps{
		Config:        cfg,
		EntryHandler:  handlers.NewEntryHandler(resolver, store),
		NoteHandler:   handlers.NewNoteHandler(auth, resolver, store),
		LookupHandler: handlers.NewLookupHandler(auth, store),
		Source:        dictsource.NewClient(cfg.Source),
	}

	return fn(deps, handlers.NewSearchHandler(emb, index, store))
}
