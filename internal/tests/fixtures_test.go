package tests

import (
	"os"
	"testing"

	"foros-bot/internal/storage"

	"github.com/stretchr/testify/require"
)

// Fixture document: waiter 1 rated 4.5 over two reviews, waiter 2 unrated,
// bartender 1 rated 5 over three reviews, all workshops empty.
const fixtureDoc = `{
  "waiters": {
    "1": {
      "name": "Анна",
      "phone": "+79990001122",
      "rating": 4.5,
      "reviews": [
        {"user_id": 100, "user": "Гость", "rating": 5, "text": "Отлично", "date": "2025-01-10T10:00:00Z"},
        {"user_id": 101, "user": "Гость 2", "rating": 4, "text": "Хорошо", "date": "2025-01-11T10:00:00Z"}
      ],
      "photo": "anna.jpg"
    },
    "2": {"name": "Борис", "phone": "", "rating": 0, "reviews": []}
  },
  "bartenders": {
    "1": {
      "name": "Виктор",
      "phone": "+79990003344",
      "rating": 5,
      "reviews": [
        {"user_id": 100, "user": "Гость", "rating": 5, "text": "Супер", "date": "2025-01-10T10:00:00Z"},
        {"user_id": 101, "user": "Гость 2", "rating": 5, "text": "Класс", "date": "2025-01-11T10:00:00Z"},
        {"user_id": 102, "user": "Гость 3", "rating": 5, "text": "Топ", "date": "2025-01-12T10:00:00Z"}
      ]
    }
  },
  "cold_kitchen": {"rating": 0, "reviews": []},
  "hot_kitchen": {"rating": 0, "reviews": []},
  "pastry_kitchen": {"rating": 0, "reviews": []}
}`

func openFixtureRepo(t *testing.T, path string) *storage.JSONFileRepository {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(fixtureDoc), 0o644))
	repo, err := storage.OpenJSONFile(path)
	require.NoError(t, err)
	return repo
}
