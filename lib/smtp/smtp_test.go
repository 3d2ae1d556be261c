package smtp

import (
	"strings"
	"testing"

	"github.com/emersion/go-sasl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSendHTML(t *testing.T) {
	t.Run(`not configured`, func(t *testing.T) {
		called := false
		client := impl{send: func(string, bool, sasl.Client, string, []string, []byte) error {
			called = true
			return nil
		}}
		require.NoError(t, client.SendHTML([]string{"hr@example.com"}, "subj", "<p>x</p>"))
		require.False(t, called)
	})
	t.Run(`composes mime message`, func(t *testing.T) {
		var sentTo []string
		var sentBody string
		var sentAddr string
		client := impl{
			cfg: Config{User: "bot@example.com", Password: "p", Host: "smtp.example.com", Port: "465", TLSEnabled: true, FromName: "Probation"},
			send: func(addr string, tlsEnabled bool, auth sasl.Client, from string, to []string, msg []byte) error {
				require.True(t, tlsEnabled)
				require.Equal(t, "bot@example.com", from)
				sentAddr = addr
				sentTo = to
				sentBody = string(msg)
				return nil
			},
		}
		err := client.SendHTML([]string{"hr@example.com", "ceo@example.com"}, "[Action Required] sign", "<p>hello</p>")
		require.NoError(t, err)
		require.Equal(t, "smtp.example.com:465", sentAddr)
		require.Equal(t, []string{"hr@example.com", "ceo@example.com"}, sentTo)
		require.True(t, strings.Contains(sentBody, "Subject: [Action Required] sign"))
		require.True(t, strings.Contains(sentBody, "text/html"))
		require.True(t, strings.Contains(sentBody, "hello"))
	})
	t.Run(`send error returned`, func(t *testing.T) {
		client := impl{
			cfg: Config{User: "u", Host: "h", Port: "25"},
			send: func(string, bool, sasl.Client, string, []string, []byte) error {
				return errors.New("refused")
			},
		}
		require.Error(t, client.SendHTML([]string{"a@example.com"}, "s", "b"))
	})
	t.Run(`no recipients`, func(t *testing.T) {
		client := impl{cfg: Config{User: "u", Host: "h", Port: "25"}}
		require.Error(t, client.SendHTML(nil, "s", "b"))
	})
}
