package screens

import (
	"context"
	"sync"

	"github.com/Levipasha/retrend/internal/models"
	tea "github.com/charmbracelet/bubbletea"
)

// collect runs cmd and any batched commands, returning every message.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func hasMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type fakeFetcher struct {
	products []models.Product
	err      error
	calls    []string
}

func (f *fakeFetcher) GetProducts(ctx context.Context, location string) ([]models.Product, error) {
	f.calls = append(f.calls, location)
	return f.products, f.err
}

type fakeUploader struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeUploader) Upload(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return "https://cdn.example" + path, nil
}

type fakePoster struct {
	err      error
	payloads []models.ProductPayload
}

func (f *fakePoster) AddProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error) {
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Product{ID: "p1", Title: payload.Title}, nil
}
