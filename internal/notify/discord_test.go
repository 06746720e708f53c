package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSession struct {
	mock.Mock
}

func (m *mockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

func (m *mockSession) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(recipientID)
	ch, _ := args.Get(0).(*discordgo.Channel)
	return ch, args.Error(1)
}

func TestDiscordSink_SubmittedPostsToModerators(t *testing.T) {
	session := new(mockSession)
	session.On("ChannelMessageSendEmbed", "mod-channel", mock.MatchedBy(func(e *discordgo.MessageEmbed) bool {
		return e.Color == colorPending && len(e.Fields) == 5
	})).Return(&discordgo.Message{}, nil).Once()

	sink := NewDiscordSinkWithSession(session, "mod-channel")
	err := sink.Deliver(context.Background(), Notification{
		Kind: KindSubmitted, ContributionID: 3, ParticipantID: "123", TeamID: "red",
		ContributionKind: "photo", Payload: "photo-1", Caption: "sunset",
	})
	require.NoError(t, err)
	session.AssertExpectations(t)
	session.AssertNotCalled(t, "UserChannelCreate", mock.Anything)
}

func TestDiscordSink_DecisionDMsParticipant(t *testing.T) {
	session := new(mockSession)
	session.On("ChannelMessageSendEmbed", "mod-channel", mock.Anything).Return(&discordgo.Message{}, nil).Once()
	session.On("UserChannelCreate", "123").Return(&discordgo.Channel{ID: "dm-1"}, nil).Once()
	session.On("ChannelMessageSendEmbed", "dm-1", mock.MatchedBy(func(e *discordgo.MessageEmbed) bool {
		return e.Color == colorRejected && strings.Contains(e.Description, "too short")
	})).Return(&discordgo.Message{}, nil).Once()

	sink := NewDiscordSinkWithSession(session, "mod-channel")
	err := sink.Deliver(context.Background(), Notification{
		Kind: KindDecided, ContributionID: 3, ParticipantID: "123", TeamID: "red",
		ContributionKind: "article", Outcome: "reject", Reason: "too short", ModeratorID: "mod",
	})
	require.NoError(t, err)
	session.AssertExpectations(t)
}

func TestDiscordSink_Errors(t *testing.T) {
	session := new(mockSession)
	session.On("ChannelMessageSendEmbed", "mod-channel", mock.Anything).Return(nil, errors.New("rate limited")).Once()

	sink := NewDiscordSinkWithSession(session, "mod-channel")
	err := sink.Deliver(context.Background(), Notification{Kind: KindDecided, ContributionID: 1, Outcome: "approve"})
	assert.ErrorContains(t, err, "rate limited")
	session.AssertNotCalled(t, "UserChannelCreate", mock.Anything)
	assert.NoError(t, sink.Close())
}

func TestDecisionEmbeds(t *testing.T) {
	n := Notification{Kind: KindDecided, ContributionID: 9, Outcome: "approve", PointsDelta: 10, TeamID: "red", ContributionKind: "article"}

	title, color := decisionTitle(n)
	assert.Contains(t, title, "+10")
	assert.Equal(t, colorApproved, color)
	assert.Contains(t, participantEmbed(n).Description, "10 points for team red")
}
