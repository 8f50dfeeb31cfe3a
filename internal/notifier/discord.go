package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/trip-planner/internal/config"
	"github.com/gdg-garage/trip-planner/internal/models"
	"gorm.io/gorm"
)

type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   messageSender
	channelID string
	db        *gorm.DB
}

func NewDiscordNotifier(session *discordgo.Session, channelID string, db *gorm.DB) *DiscordNotifier {
	n := &DiscordNotifier{channelID: channelID, db: db}
	if session != nil {
		n.session = session
	}
	return n
}

// NewFromConfig builds a bot-token notifier. It fails when the bot token or
// channel is not configured.
func NewFromConfig(cfg *config.Config, db *gorm.DB) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" || cfg.DiscordNotificationsChannelID == "" {
		return nil, fmt.Errorf("discord bot token or notifications channel not configured")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID, db), nil
}

func (n *DiscordNotifier) NotifyTripConfirmed(ctx context.Context, trip models.Trip) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, n.confirmationMessage(ctx, trip))
	return err
}

func (n *DiscordNotifier) confirmationMessage(ctx context.Context, trip models.Trip) string {
	who := fmt.Sprintf("user #%d", trip.OwnerID)
	if n.db != nil {
		var user models.User
		if err := n.db.WithContext(ctx).First(&user, trip.OwnerID).Error; err == nil {
			who = fmt.Sprintf("%s (<@%s>)", user.Username, user.DiscordID)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✈️ **Trip Confirmed**\n**Traveller:** %s\n**Destination:** %s\n", who, trip.Destination)
	if trip.TransportDetails != nil && trip.TransportDetails.Option != nil {
		fmt.Fprintf(&b, "**Transport:** %s x%d\n", trip.TransportDetails.Option.Name, trip.TransportDetails.Seats)
	}
	if trip.AccommodationDetails != nil && trip.AccommodationDetails.Hotel != nil {
		fmt.Fprintf(&b, "**Stay:** %s, %d nights\n", trip.AccommodationDetails.Hotel.Name, trip.AccommodationDetails.Nights)
	}
	fmt.Fprintf(&b, "**Total:** ₹%s", trip.TotalCost.StringFixed(0))
	return b.String()
}
