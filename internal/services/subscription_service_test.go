package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/testutil"
	"github.com/google/uuid"
)

func TestSubscriptionToggleAndProfile(t *testing.T) {
	db := testutil.NewDB(t)
	a := newUser(t, db, "alice")
	b := newUser(t, db, "bob")
	subs := NewSubscriptionService(db)
	users := NewUserService(db, &config.Config{JWTSecret: "test"}, newRelay())

	profile, err := users.ChannelProfile(ctx, b.ID, "ALICE")
	if err != nil {
		t.Fatalf("ChannelProfile: %v", err)
	}
	if profile.IsSubscribed || profile.SubscribersCount != 0 {
		t.Fatalf("before subscribing: %+v", profile)
	}

	if res, err := subs.Toggle(ctx, b.ID, a.ID); err != nil || res != ToggleCreated {
		t.Fatalf("subscribe = %q, %v", res, err)
	}

	profile, err = users.ChannelProfile(ctx, b.ID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !profile.IsSubscribed || profile.SubscribersCount != 1 || profile.SubscribedToCount != 0 {
		t.Errorf("bob viewing alice: %+v", profile)
	}
	if profile.Email != "alice@example.com" || profile.Username != "alice" {
		t.Errorf("identity fields: %+v", profile)
	}

	self, err := users.ChannelProfile(ctx, a.ID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if self.IsSubscribed {
		t.Error("alice is not subscribed to herself")
	}

	bob, err := users.ChannelProfile(ctx, a.ID, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if bob.SubscribedToCount != 1 || bob.IsSubscribed {
		t.Errorf("alice viewing bob: %+v", bob)
	}

	if res, err := subs.Toggle(ctx, b.ID, a.ID); err != nil || res != ToggleDeleted {
		t.Fatalf("unsubscribe = %q, %v", res, err)
	}
	profile, err = users.ChannelProfile(ctx, b.ID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if profile.IsSubscribed || profile.SubscribersCount != 0 {
		t.Errorf("after unsubscribing: %+v", profile)
	}
}

func TestChannelProfileUnknownUsername(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserService(db, &config.Config{JWTSecret: "test"}, newRelay())

	_, err := users.ChannelProfile(ctx, uuid.New(), "ghost")
	wantKind(t, err, ErrNotFound)
	_, err = users.ChannelProfile(ctx, uuid.New(), "  ")
	wantKind(t, err, ErrValidation)
}

func TestSubscriberLists(t *testing.T) {
	db := testutil.NewDB(t)
	a := newUser(t, db, "alice")
	b := newUser(t, db, "bob")
	c := newUser(t, db, "carol")
	subs := NewSubscriptionService(db)

	for _, s := range []uuid.UUID{b.ID, c.ID} {
		if _, err := subs.Toggle(ctx, s, a.ID); err != nil {
			t.Fatal(err)
		}
	}

	list, err := subs.Subscribers(ctx, a.ID)
	if err != nil {
		t.Fatalf("Subscribers: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("subscribers = %d, want 2", len(list))
	}
	for _, e := range list {
		if e.Subscriber == nil || e.Subscriber.ID == nil || e.Subscriber.Email == "" || e.Subscriber.FullName == "" {
			t.Errorf("subscriber projection incomplete: %+v", e.Subscriber)
		}
		if e.Subscriber.CreatedAt != nil || e.Subscriber.CoverImage != nil {
			t.Errorf("subscriber projection leaks fields: %+v", e.Subscriber)
		}
	}

	channels, err := subs.SubscribedChannels(ctx, b.ID)
	if err != nil {
		t.Fatalf("SubscribedChannels: %v", err)
	}
	if len(channels) != 1 || channels[0].Username != "alice" || channels[0].CreatedAt != nil {
		t.Errorf("subscribed channels = %+v", channels)
	}

	_, err = subs.Subscribers(ctx, uuid.New())
	wantKind(t, err, ErrNotFound)
	_, err = subs.SubscribedChannels(ctx, uuid.New())
	wantKind(t, err, ErrNotFound)
	_, err = subs.Toggle(ctx, b.ID, uuid.New())
	wantKind(t, err, ErrNotFound)
}
