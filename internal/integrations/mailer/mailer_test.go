package mailer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehub/clinic-booking/pkg/logger"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender_Send(t *testing.T) {
	api := &fakeSES{}
	sender, err := NewSESSender(api, SESConfig{FromEmail: "appointments@smilehub.lk", FromName: "Smile Hub"}, logger.NewNop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), "patient@example.com", "Appointment Cancelled", "<p>hi</p>")

	require.NoError(t, err)
	require.NotNil(t, api.input)
	assert.Equal(t, "Smile Hub <appointments@smilehub.lk>", aws.ToString(api.input.FromEmailAddress))
	assert.Equal(t, []string{"patient@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "Appointment Cancelled", aws.ToString(api.input.Content.Simple.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(api.input.Content.Simple.Body.Html.Data))
}

func TestSESSender_Errors(t *testing.T) {
	_, err := NewSESSender(nil, SESConfig{FromEmail: "a@b.c"}, logger.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)

	sender, err := NewSESSender(&fakeSES{err: errors.New("throttled")}, SESConfig{FromEmail: "a@b.c"}, logger.NewNop())
	require.NoError(t, err)

	assert.ErrorIs(t, sender.Send(context.Background(), "p@example.com", "s", "h"), ErrSendFailed)
	assert.ErrorIs(t, sender.Send(context.Background(), " ", "s", "h"), ErrInvalidRecipient)
}

func TestSendGridSender_Send(t *testing.T) {
	var body string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		auth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender, err := NewSendGridSender(SendGridConfig{
		APIKey:    "SG.test",
		FromEmail: "appointments@smilehub.lk",
		FromName:  "Smile Hub",
		Host:      srv.URL,
	}, logger.NewNop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), "patient@example.com", "Appointment Confirmed!", "<p>see you</p>")

	require.NoError(t, err)
	assert.Equal(t, "Bearer SG.test", auth)
	assert.Contains(t, body, "patient@example.com")
	assert.Contains(t, body, "Appointment Confirmed!")
}

func TestSendGridSender_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	sender, err := NewSendGridSender(SendGridConfig{APIKey: "SG.bad", FromEmail: "a@b.c", Host: srv.URL}, logger.NewNop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), "patient@example.com", "s", "h")
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestNewSendGridSender_RequiresKey(t *testing.T) {
	_, err := NewSendGridSender(SendGridConfig{FromEmail: "a@b.c"}, logger.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(logger.NewNop())
	assert.NoError(t, s.Send(context.Background(), "p@example.com", "s", "h"))
	assert.ErrorIs(t, s.Send(context.Background(), "", "s", "h"), ErrInvalidRecipient)
}
