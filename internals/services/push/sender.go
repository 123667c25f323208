// file: internals/services/push/sender.go
package push

import (
	"context"
	"log"
	"os"

	"sekolahku_backend/internals/configs"
)

// Sender adalah port notifikasi push. Implementasi nyata memakai FCM;
// test memakai fake. Kegagalan push TIDAK boleh menggagalkan request.
type Sender interface {
	// Send mengirim push visible (title+body) ke satu token.
	Send(ctx context.Context, token, title, body string, data map[string]string) error
	// SendMulticast mengirim ke banyak token, hasil per-token best-effort.
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (success, failure int, err error)
	// SendSilent mengirim push data-only (tanpa title/body), mis. update badge.
	SendSilent(ctx context.Context, token string, data map[string]string) error
}

// NewSenderFromEnv memilih implementasi: FCM kalau file kredensial ada,
// kalau tidak ada fallback no-op supaya server tetap bisa jalan di dev.
func NewSenderFromEnv() Sender {
	credsPath := configs.FCMCredentialsFile
	if _, err := os.Stat(credsPath); err != nil {
		log.Printf("⚠️ Kredensial FCM tidak ditemukan (%s), push dinonaktifkan", credsPath)
		return NoopSender{}
	}
	sender, err := NewFCMSender(context.Background(), credsPath)
	if err != nil {
		log.Printf("❌ Gagal inisialisasi FCM: %v — push dinonaktifkan", err)
		return NoopSender{}
	}
	log.Println("✅ FCM sender siap.")
	return sender
}

// NoopSender dipakai saat FCM tidak dikonfigurasi.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	return nil
}

func (NoopSender) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, error) {
	return 0, 0, nil
}

func (NoopSender) SendSilent(ctx context.Context, token string, data map[string]string) error {
	return nil
}
