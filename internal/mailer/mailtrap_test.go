package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastycheddar/salt-scoville-ecommerce-sub000/internal/config"
)

func TestMailtrapMailer_Send(t *testing.T) {
	var got mailtrapPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailtrapMailer(config.MailtrapConfig{APIURL: srv.URL, APIToken: "tok"})
	err := m.Send(context.Background(), Email{
		From:     "shop@example.com",
		FromName: "Shop",
		To:       []string{"a@example.com", "b@example.com"},
		Subject:  "Hi",
		TextBody: "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "shop@example.com", got.From.Email)
	assert.Len(t, got.To, 2)
	assert.Equal(t, "hello", got.Text)
}

func TestMailtrapMailer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewMailtrapMailer(config.MailtrapConfig{APIURL: srv.URL, APIToken: "tok"})
	err := m.Send(context.Background(), Email{From: "a@b.c", To: []string{"x@y.z"}, Subject: "s", TextBody: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestMock_FailFor(t *testing.T) {
	m := &Mock{FailFor: map[string]error{"bad@example.com": assert.AnError}}
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, Email{To: []string{"ok@example.com"}}))
	require.ErrorIs(t, m.Send(ctx, Email{To: []string{"bad@example.com"}}), assert.AnError)
	assert.Len(t, m.Messages(), 1)
}
