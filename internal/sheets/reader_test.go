package sheets

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func TestToStrings(t *testing.T) {
	got := ToStrings([][]any{
		{"DESIGN", "ARTICLE", "QUALITY", "QTY"},
		{"XYZ-100", "A1", nil, float64(5)},
		{},
	})

	assert.Equal(t, [][]string{
		{"DESIGN", "ARTICLE", "QUALITY", "QTY"},
		{"XYZ-100", "A1", "", "5"},
		{},
	}, got)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	rateLimited := classify(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, rateLimited, common.ErrRateLimit)

	notFound := classify(&googleapi.Error{Code: http.StatusNotFound})
	var re *common.RetryableError
	require.True(t, errors.As(notFound, &re))
	assert.False(t, re.Retryable)

	server := &googleapi.Error{Code: http.StatusInternalServerError}
	assert.Equal(t, error(server), classify(server))
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, SaveToken(path, token))
	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}
