package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/trip-planner/internal/config"
	"github.com/gdg-garage/trip-planner/internal/models"
	"github.com/gdg-garage/trip-planner/internal/planner"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingSender struct {
	channel string
	content string
	err     error
}

func (r *recordingSender) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.channel = channelID
	r.content = content
	return &discordgo.Message{}, r.err
}

func TestNotifyTripConfirmed(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.User{})
	user := models.User{DiscordID: "42", Username: "traveller"}
	db.Create(&user)

	sender := &recordingSender{}
	n := &DiscordNotifier{session: sender, channelID: "chan-1", db: db}

	trip := models.Trip{
		ID:          "trip-1",
		OwnerID:     user.ID,
		Destination: "bengaluru",
		TransportDetails: &planner.Transport{
			Mode:   planner.ModeBus,
			Option: &planner.Item{Name: "Volvo AC Sleeper"},
			Seats:  2,
		},
		AccommodationDetails: &planner.Accommodation{
			Hotel:  &planner.Item{Name: "Lemon Tree Premier"},
			Nights: 3,
		},
	}
	trip.TotalCost = decimal.NewFromInt(18300)

	if err := n.NotifyTripConfirmed(context.Background(), trip); err != nil {
		t.Fatalf("NotifyTripConfirmed returned error: %v", err)
	}

	if sender.channel != "chan-1" {
		t.Errorf("expected channel chan-1, got %s", sender.channel)
	}
	for _, want := range []string{"traveller (<@42>)", "bengaluru", "Volvo AC Sleeper x2", "Lemon Tree Premier, 3 nights", "₹18300"} {
		if !strings.Contains(sender.content, want) {
			t.Errorf("expected message to contain %q, got:\n%s", want, sender.content)
		}
	}
}

func TestNotifyTripConfirmed_Errors(t *testing.T) {
	t.Run("NoSession", func(t *testing.T) {
		n := NewDiscordNotifier(nil, "chan", nil)
		if err := n.NotifyTripConfirmed(context.Background(), models.Trip{}); err == nil {
			t.Fatal("expected error without a session")
		}
	})

	t.Run("NoChannel", func(t *testing.T) {
		n := &DiscordNotifier{session: &recordingSender{}}
		if err := n.NotifyTripConfirmed(context.Background(), models.Trip{}); err == nil {
			t.Fatal("expected error without a channel")
		}
	})

	t.Run("SendFails", func(t *testing.T) {
		n := &DiscordNotifier{session: &recordingSender{err: errors.New("rate limited")}, channelID: "chan"}
		err := n.NotifyTripConfirmed(context.Background(), models.Trip{OwnerID: 5})
		if err == nil || !strings.Contains(err.Error(), "rate limited") {
			t.Fatalf("expected send error, got %v", err)
		}
	})
}

func TestNewFromConfigRequiresSettings(t *testing.T) {
	if _, err := NewFromConfig(&config.Config{}, nil); err == nil {
		t.Fatal("expected error for empty config")
	}
	n, err := NewFromConfig(&config.Config{DiscordBotToken: "token", DiscordNotificationsChannelID: "chan"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.channelID != "chan" {
		t.Errorf("expected channel chan, got %s", n.channelID)
	}
}
