// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Bu paket dışarıya üç şey sunar:
// 1. EmailSender interface — service'ler buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
// 3. NewLogSender — API key yoksa (development) email yerine log yazan fallback
package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v3"
)

// SuggestionNotification, admin'e gönderilen "yeni radyo önerisi" email'inin içeriği.
// models paketine bağımlılık kurulmaz — sadece gereken alanlar taşınır.
type SuggestionNotification struct {
	RadioName    string
	Description  string
	StreamURL    string
	Country      string
	Language     string
	ContactEmail string
}

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendSuggestionNotification, yeni bir radyo önerisi geldiğinde admin'e
	// bilgilendirme email'i gönderir. Fire-and-forget çağrılır — hata caller
	// tarafından loglanır, öneriyi gönderen kullanıcıya ASLA yansıtılmaz.
	SendSuggestionNotification(ctx context.Context, n SuggestionNotification) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client     *resend.Client
	fromEmail  string // Gönderici adresi (ör: noreply@dalga.app)
	adminEmail string // Önerilerin bildirileceği admin adresi
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici email adresi — Resend'de doğrulanmış domain altında olmalı.
// adminEmail: Yeni önerilerin bildirileceği adres.
func NewResendSender(apiKey, fromEmail, adminEmail string) EmailSender {
	return &resendSender{
		client:     resend.NewClient(apiKey),
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
	}
}

// SendSuggestionNotification, admin'e yeni öneri bildirimi gönderir.
func (s *resendSender) SendSuggestionNotification(ctx context.Context, n SuggestionNotification) error {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background-color:#1a1a2e;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#1a1a2e;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#16213e;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#e2e8f0;font-size:24px;margin:0 0 8px 0;">dalga</h1>
              <h2 style="color:#e2e8f0;font-size:18px;margin:0 0 24px 0;">New Radio Suggestion</h2>
              <p style="color:#94a3b8;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                A new station is waiting for review.
              </p>
              <table cellpadding="4" cellspacing="0" style="color:#94a3b8;font-size:14px;">
                <tr><td style="color:#64748b;">Name</td><td>%s</td></tr>
                <tr><td style="color:#64748b;">Stream</td><td>%s</td></tr>
                <tr><td style="color:#64748b;">Country</td><td>%s</td></tr>
                <tr><td style="color:#64748b;">Language</td><td>%s</td></tr>
                <tr><td style="color:#64748b;">Contact</td><td>%s</td></tr>
              </table>
              <p style="color:#64748b;font-size:13px;line-height:1.6;margin:24px 0 0 0;">%s</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, n.RadioName, n.StreamURL, n.Country, n.Language, n.ContactEmail, n.Description)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("dalga <%s>", s.fromEmail),
		To:      []string{s.adminEmail},
		Subject: fmt.Sprintf("New radio suggestion: %s", n.RadioName),
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send suggestion notification: %w", err)
	}

	return nil
}

// logSender, email göndermek yerine log yazan EmailSender implementasyonu.
// RESEND_API_KEY yoksa (development/test ortamı) main.go bunu wire'lar —
// öneri akışı email servisi olmadan da çalışır.
type logSender struct{}

// NewLogSender, log-only EmailSender oluşturur.
func NewLogSender() EmailSender {
	return &logSender{}
}

func (s *logSender) SendSuggestionNotification(_ context.Context, n SuggestionNotification) error {
	log.Printf("[email] (log-only) suggestion notification: name=%q stream=%s country=%s",
		n.RadioName, n.StreamURL, n.Country)
	return nil
}
