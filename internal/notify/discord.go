package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// DiscordSession is the slice of the discordgo session the sink uses
type DiscordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// DiscordSink posts queue alerts and decisions to the moderator channel and
// DMs participants about decisions on their contributions
type DiscordSink struct {
	session   DiscordSession
	channelID string
	closer    func() error
}

// NewDiscordSink opens a REST-only bot session
func NewDiscordSink(token, moderatorChannelID string) (*DiscordSink, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	sink := NewDiscordSinkWithSession(s, moderatorChannelID)
	sink.closer = s.Close
	return sink, nil
}

// NewDiscordSinkWithSession wraps an existing session
func NewDiscordSinkWithSession(session DiscordSession, moderatorChannelID string) *DiscordSink {
	return &DiscordSink{session: session, channelID: moderatorChannelID}
}

// Name implements Sink
func (d *DiscordSink) Name() string { return ChannelDiscord }

// Deliver implements Sink
func (d *DiscordSink) Deliver(ctx context.Context, n Notification) error {
	opt := discordgo.WithContext(ctx)

	if _, err := d.session.ChannelMessageSendEmbed(d.channelID, moderatorEmbed(n), opt); err != nil {
		return fmt.Errorf("moderator channel: %w", err)
	}
	if n.Kind != KindDecided {
		return nil
	}

	dm, err := d.session.UserChannelCreate(n.ParticipantID, opt)
	if err != nil {
		return fmt.Errorf("open DM with %s: %w", n.ParticipantID, err)
	}
	if _, err := d.session.ChannelMessageSendEmbed(dm.ID, participantEmbed(n), opt); err != nil {
		return fmt.Errorf("DM %s: %w", n.ParticipantID, err)
	}
	return nil
}

// Close releases the session
func (d *DiscordSink) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer()
}

func moderatorEmbed(n Notification) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Participant", Value: n.ParticipantID, Inline: true},
		{Name: "Team", Value: n.TeamID, Inline: true},
		{Name: "Kind", Value: n.ContributionKind, Inline: true},
	}

	if n.Kind == KindSubmitted {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Payload", Value: n.Payload})
		if n.Caption != "" {
			fields = append(fields, &discordgo.MessageEmbedField{Name: "Caption", Value: n.Caption})
		}
		return &discordgo.MessageEmbed{
			Title:  fmt.Sprintf("📥 Contribution #%d awaiting review", n.ContributionID),
			Color:  colorPending,
			Fields: fields,
			Footer: &discordgo.MessageEmbedFooter{Text: "Moderation queue"},
		}
	}

	fields = append(fields, &discordgo.MessageEmbedField{Name: "Moderator", Value: n.ModeratorID, Inline: true})
	if n.Reason != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Reason", Value: n.Reason})
	}
	title, color := decisionTitle(n)
	return &discordgo.MessageEmbed{
		Title:  title,
		Color:  color,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: "Moderation decision"},
	}
}

func participantEmbed(n Notification) *discordgo.MessageEmbed {
	title, color := decisionTitle(n)
	desc := fmt.Sprintf("Your %s earned %d points for team %s.", n.ContributionKind, n.PointsDelta, n.TeamID)
	if n.Outcome != string(domain.OutcomeApprove) {
		desc = fmt.Sprintf("Your %s was not accepted.", n.ContributionKind)
		if n.Reason != "" {
			desc += "\nReason: " + n.Reason
		}
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: desc,
		Color:       color,
	}
}

func decisionTitle(n Notification) (string, int) {
	if n.Outcome == string(domain.OutcomeApprove) {
		return fmt.Sprintf("✅ Contribution #%d approved (+%d)", n.ContributionID, n.PointsDelta), colorApproved
	}
	return fmt.Sprintf("❌ Contribution #%d rejected", n.ContributionID), colorRejected
}
