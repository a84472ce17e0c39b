package config

import "testing"

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Webhook:  WebhookConfig{APIKey: "secret"},
	}
}

func TestNormalizeRequiresCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for missing token")
	}

	cfg = validConfig()
	cfg.Webhook.APIKey = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for missing apikey")
	}
}

func TestNormalizeRunModes(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q, want longpoll default", cfg.Telegram.RunMode)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run mode = %q, want polling alias accepted", cfg.Telegram.RunMode)
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown run mode")
	}
}

func TestNormalizeWebhookDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Webhook.Listen != "0.0.0.0" || cfg.Webhook.Port != 8080 {
		t.Fatalf("webhook defaults = %q:%d", cfg.Webhook.Listen, cfg.Webhook.Port)
	}
}

func TestChatsSelection(t *testing.T) {
	cfg := validConfig()
	chats := cfg.Chats()
	if chats.Main != chatFurcast || chats.NSFW != chatFurcastNSFW {
		t.Fatalf("production chats = %+v", chats)
	}
	if chats.Invite != chatFurcastNSFW {
		t.Fatalf("invite chat = %d, want the restricted channel", chats.Invite)
	}

	cfg.Bot.TestMode = true
	chats = cfg.Chats()
	if chats.Main != chatRileyTestGroup || chats.NSFW != chatRileyTestChan {
		t.Fatalf("test chats = %+v", chats)
	}
	if chats.Admin != chatXBNChatops {
		t.Fatalf("admin chat = %d, want chatops in both modes", chats.Admin)
	}
}
