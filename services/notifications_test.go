package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotificationRouter_User_Key_Variants_Converge(t *testing.T) {
	req := require.New(t)
	fixture := newHubFixture()
	router := NewNotificationRouter(fixture.log, fixture.registry, fixture.broadcaster)

	// Given two connections joining with case/whitespace variants of one id
	firstID, first := fixture.connect()
	secondID, second := fixture.connect()
	req.True(router.JoinUserNotifications(firstID, " ABC "))
	req.True(router.JoinUserNotifications(secondID, "abc"))

	// When a notification targets that user
	router.PublishToUser(context.Background(), "AbC", "proposal-invalidated", map[string]any{"proposalId": "p1"})

	// Then both connections received it
	req.Len(first.Events(), 1)
	req.Len(second.Events(), 1)
}

func TestNotificationRouter_Rejects_Blank_UserID(t *testing.T) {
	req := require.New(t)
	fixture := newHubFixture()
	router := NewNotificationRouter(fixture.log, fixture.registry, fixture.broadcaster)

	connID, sink := fixture.connect()

	// Blank user ids join nothing and publish nothing
	req.False(router.JoinUserNotifications(connID, "  "))
	router.PublishToUser(context.Background(), "  ", "noise", nil)
	req.Empty(sink.Events())
}

func TestNotificationRouter_Targets_Only_That_User(t *testing.T) {
	req := require.New(t)
	fixture := newHubFixture()
	router := NewNotificationRouter(fixture.log, fixture.registry, fixture.broadcaster)

	aliceID, alice := fixture.connect()
	bobID, bob := fixture.connect()
	router.JoinUserNotifications(aliceID, "alice")
	router.JoinUserNotifications(bobID, "bob")

	// When notifying alice only
	router.PublishToUser(context.Background(), "alice", "appointment-moved", nil)

	// Then bob sees nothing
	req.Len(alice.Events(), 1)
	req.Empty(bob.Events())
}
