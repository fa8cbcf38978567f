package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
	"github.com/bnema/discord-autochat/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testDelays = Delays{
	Token:   5 * time.Second,
	Message: 20 * time.Second,
	Restart: 30 * time.Second,
}

var testMessages = []string{"gm", "how is everyone", "nice weather today", "any plans tonight?", "lol", "brb"}

func echoPost(_ context.Context, channel domain.ChannelID, content string) (domain.RemoteMessage, error) {
	return domain.RemoteMessage{ID: "posted", ChannelID: channel, AuthorID: "self", Content: content}, nil
}

func echoReply(_ context.Context, channel domain.ChannelID, replyTo domain.MessageID, content string) (domain.RemoteMessage, error) {
	return domain.RemoteMessage{ID: "reply", ChannelID: channel, AuthorID: "self", Content: content, ReferencedID: replyTo}, nil
}

type schedulerFixture struct {
	sleeper  *recordingSleeper
	observer *countingObserver
}

func newTestScheduler(t *testing.T, cfg SchedulerConfig, platforms map[domain.Credential]ports.ChatPlatform) (*Scheduler, schedulerFixture) {
	t.Helper()

	if cfg.Messages == nil {
		cfg.Messages = testMessages
	}
	if cfg.Delays == (Delays{}) {
		cfg.Delays = testDelays
	}
	cfg.Session = SessionOptions{
		Retry:  RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second},
		Logger: discardLogger(),
	}

	fx := schedulerFixture{sleeper: &recordingSleeper{}, observer: newCountingObserver()}
	rng := seededRand(42)
	scheduler, err := NewScheduler(cfg, platformsFor(platforms), NewReplyGenerator(nil, testParams, rng, discardLogger()),
		WithSleeper(fx.sleeper),
		WithRand(rng),
		WithObserver(fx.observer),
		WithLogger(discardLogger()),
		WithCycleIDs(func() string { return "cycle-test" }),
	)
	require.NoError(t, err)

	return scheduler, fx
}

func TestSchedulerPostsOneOriginalPerChannelPerAccount(t *testing.T) {
	t.Parallel()

	platformA := mocks.NewMockChatPlatform(t)
	platformB := mocks.NewMockChatPlatform(t)
	for _, p := range []*mocks.MockChatPlatform{platformA, platformB} {
		p.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Once()
		p.EXPECT().PostMessage(mock.Anything, domain.ChannelID("c1"), mock.Anything).RunAndReturn(echoPost).Once()
		p.EXPECT().PostMessage(mock.Anything, domain.ChannelID("c2"), mock.Anything).RunAndReturn(echoPost).Once()
	}

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials:      []domain.Credential{"tok-a", "tok-b"},
		Channels:         []domain.ChannelID{"c1", "c2"},
		ReplyProbability: 0,
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platformA, "tok-b": platformB})

	require.NoError(t, scheduler.RunCycle(context.Background()))

	assert.Equal(t, 4, fx.sleeper.count(testDelays.Message))
	assert.Equal(t, 2, fx.sleeper.count(testDelays.Token))
	assert.Equal(t, 0, fx.sleeper.count(testDelays.Restart))
	assert.Equal(t, 4, fx.observer.sent)
	assert.Equal(t, 1, fx.observer.cycles)
	assert.Empty(t, fx.observer.failures)
}

func TestSchedulerPostedTextsComeFromConfiguredList(t *testing.T) {
	t.Parallel()

	var posted []string
	platform := mocks.NewMockChatPlatform(t)
	platform.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Times(3)
	platform.EXPECT().PostMessage(mock.Anything, domain.ChannelID("c1"), mock.Anything).
		RunAndReturn(func(ctx context.Context, channel domain.ChannelID, content string) (domain.RemoteMessage, error) {
			posted = append(posted, content)
			return echoPost(ctx, channel, content)
		}).Times(3)

	scheduler, _ := newTestScheduler(t, SchedulerConfig{
		Credentials: []domain.Credential{"tok-a"},
		Channels:    []domain.ChannelID{"c1"},
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platform})

	for range 3 {
		require.NoError(t, scheduler.RunCycle(context.Background()))
	}

	require.Len(t, posted, 3)
	for i, text := range posted {
		assert.Contains(t, testMessages, text)
		if i > 0 {
			assert.NotEqual(t, posted[i-1], text)
		}
	}
}

func TestSchedulerReplyWithoutCandidatesPostsNothing(t *testing.T) {
	t.Parallel()

	platform := mocks.NewMockChatPlatform(t)
	platform.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Once()
	platform.EXPECT().ListMessages(mock.Anything, domain.ChannelID("c1"), DefaultRecentLimit).Return([]domain.RemoteMessage{
		{ID: "m1", AuthorID: "self", Content: "my own"},
		{ID: "m2", AuthorID: "self", Content: "also mine"},
	}, nil).Once()

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials:      []domain.Credential{"tok-a"},
		Channels:         []domain.ChannelID{"c1"},
		ReplyProbability: 1,
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platform})

	require.NoError(t, scheduler.RunCycle(context.Background()))

	platform.AssertNotCalled(t, "PostReply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, fx.observer.failures)
	assert.Equal(t, 1, fx.sleeper.count(testDelays.Message))
}

func TestSchedulerRepliesOnceAndRemembersAcrossCycles(t *testing.T) {
	t.Parallel()

	recent := []domain.RemoteMessage{{ID: "m1", ChannelID: "c1", AuthorID: "friend", Content: "anyone around?"}}
	platform := mocks.NewMockChatPlatform(t)
	platform.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Times(2)
	platform.EXPECT().ListMessages(mock.Anything, domain.ChannelID("c1"), DefaultRecentLimit).Return(recent, nil).Times(2)
	platform.EXPECT().ListMessages(mock.Anything, domain.ChannelID("c1"), DefaultReplyScanLimit).Return(recent, nil).Once()
	platform.EXPECT().PostReply(mock.Anything, domain.ChannelID("c1"), domain.MessageID("m1"), mock.Anything).RunAndReturn(echoReply).Once()

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials:      []domain.Credential{"tok-a"},
		Channels:         []domain.ChannelID{"c1"},
		ReplyProbability: 1,
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platform})

	require.NoError(t, scheduler.RunCycle(context.Background()))
	require.NoError(t, scheduler.RunCycle(context.Background()))

	assert.Equal(t, 1, fx.observer.replies)
	assert.Equal(t, 1, fx.observer.fallbacks)
	assert.Equal(t, 2, fx.observer.cycles)
}

func TestSchedulerUnconfirmedReplyIsNotRemembered(t *testing.T) {
	t.Parallel()

	recent := []domain.RemoteMessage{{ID: "m1", AuthorID: "friend", Content: "hey"}}
	platform := mocks.NewMockChatPlatform(t)
	platform.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Times(2)
	platform.EXPECT().ListMessages(mock.Anything, domain.ChannelID("c1"), DefaultRecentLimit).Return(recent, nil).Times(2)
	platform.EXPECT().ListMessages(mock.Anything, domain.ChannelID("c1"), DefaultReplyScanLimit).Return(recent, nil).Times(2)
	platform.EXPECT().PostReply(mock.Anything, domain.ChannelID("c1"), domain.MessageID("m1"), mock.Anything).
		Return(domain.RemoteMessage{ID: "reply"}, nil).Times(2)

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials:      []domain.Credential{"tok-a"},
		Channels:         []domain.ChannelID{"c1"},
		ReplyProbability: 1,
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platform})

	require.NoError(t, scheduler.RunCycle(context.Background()))
	require.NoError(t, scheduler.RunCycle(context.Background()))

	assert.Zero(t, fx.observer.replies)
}

func TestSchedulerSkipsAccountWithRejectedCredential(t *testing.T) {
	t.Parallel()

	rejected := mocks.NewMockChatPlatform(t)
	rejected.EXPECT().FetchSelf(mock.Anything).Return(domain.Identity{}, domain.AuthError("fetch self", 401, errors.New("401 Unauthorized"))).Once()

	healthy := mocks.NewMockChatPlatform(t)
	healthy.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Once()
	healthy.EXPECT().PostMessage(mock.Anything, domain.ChannelID("c1"), mock.Anything).RunAndReturn(echoPost).Once()

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials: []domain.Credential{"tok-bad", "tok-good"},
		Channels:    []domain.ChannelID{"c1"},
	}, map[domain.Credential]ports.ChatPlatform{"tok-bad": rejected, "tok-good": healthy})

	require.NoError(t, scheduler.RunCycle(context.Background()))

	assert.Equal(t, 1, fx.sleeper.count(testDelays.Token))
	assert.Equal(t, 1, fx.sleeper.count(testDelays.Message))
	assert.Equal(t, 1, fx.observer.failures[domain.KindAuth])
	assert.Equal(t, 1, fx.observer.sent)
}

func TestSchedulerWaitsTokenDelayAfterTransientInitFailure(t *testing.T) {
	t.Parallel()

	platform := mocks.NewMockChatPlatform(t)
	platform.EXPECT().FetchSelf(mock.Anything).Return(domain.Identity{}, domain.APIError("fetch self", 502, errors.New("bad gateway"))).Once()

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials: []domain.Credential{"tok-a"},
		Channels:    []domain.ChannelID{"c1", "c2"},
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platform})

	require.NoError(t, scheduler.RunCycle(context.Background()))

	assert.Equal(t, []time.Duration{testDelays.Token}, fx.sleeper.waits)
	assert.Equal(t, 1, fx.observer.failures[domain.KindAPI])
}

func TestSchedulerStopsAccountOnMidCycleAuthFailure(t *testing.T) {
	t.Parallel()

	platform := mocks.NewMockChatPlatform(t)
	platform.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Once()
	platform.EXPECT().PostMessage(mock.Anything, domain.ChannelID("c1"), mock.Anything).
		Return(domain.RemoteMessage{}, domain.AuthError("post message", 403, errors.New("missing access"))).Once()

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials: []domain.Credential{"tok-a"},
		Channels:    []domain.ChannelID{"c1", "c2", "c3"},
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platform})

	require.NoError(t, scheduler.RunCycle(context.Background()))

	assert.Equal(t, []time.Duration{testDelays.Token}, fx.sleeper.waits)
	assert.Equal(t, 1, fx.observer.failures[domain.KindAuth])
}

func TestSchedulerContinuesWithNextChannelAfterRetriesExhausted(t *testing.T) {
	t.Parallel()

	platform := mocks.NewMockChatPlatform(t)
	platform.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Once()
	platform.EXPECT().PostMessage(mock.Anything, domain.ChannelID("c1"), mock.Anything).
		Return(domain.RemoteMessage{}, domain.APIError("post message", 500, errors.New("boom"))).Times(3)
	platform.EXPECT().PostMessage(mock.Anything, domain.ChannelID("c2"), mock.Anything).RunAndReturn(echoPost).Once()

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials: []domain.Credential{"tok-a"},
		Channels:    []domain.ChannelID{"c1", "c2"},
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platform})

	require.NoError(t, scheduler.RunCycle(context.Background()))

	assert.Equal(t, 2, fx.sleeper.count(time.Second))
	assert.Equal(t, 2, fx.sleeper.count(testDelays.Message))
	assert.Equal(t, 1, fx.sleeper.count(testDelays.Token))
	assert.Equal(t, 1, fx.observer.failures[domain.KindAPI])
	assert.Equal(t, 1, fx.observer.sent)
}

func TestSchedulerRunStopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	platform := mocks.NewMockChatPlatform(t)
	platform.EXPECT().FetchSelf(mock.Anything).Return(selfIdentity, nil).Once()
	platform.EXPECT().PostMessage(mock.Anything, domain.ChannelID("c1"), mock.Anything).RunAndReturn(echoPost).Once()

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials: []domain.Credential{"tok-a"},
		Channels:    []domain.ChannelID{"c1"},
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": platform})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fx.sleeper.onSleep = func(d time.Duration) error {
		if d == testDelays.Restart {
			cancel()
		}
		return nil
	}

	err := scheduler.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, fx.observer.cycles)
	assert.Equal(t, testDelays.Restart, fx.sleeper.waits[len(fx.sleeper.waits)-1])
}

func TestSchedulerRunCycleReturnsImmediatelyWhenCancelled(t *testing.T) {
	t.Parallel()

	scheduler, fx := newTestScheduler(t, SchedulerConfig{
		Credentials: []domain.Credential{"tok-a"},
		Channels:    []domain.ChannelID{"c1"},
	}, map[domain.Credential]ports.ChatPlatform{"tok-a": mocks.NewMockChatPlatform(t)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, scheduler.RunCycle(ctx), context.Canceled)
	assert.Empty(t, fx.sleeper.waits)
}

func TestNewSchedulerValidatesConfig(t *testing.T) {
	t.Parallel()

	factory := platformsFor(nil)
	valid := SchedulerConfig{
		Credentials: []domain.Credential{"tok"},
		Channels:    []domain.ChannelID{"c1"},
		Messages:    []string{"hi"},
	}

	tests := []struct {
		name    string
		mutate  func(*SchedulerConfig)
		factory ports.PlatformFactory
	}{
		{name: "no credentials", mutate: func(c *SchedulerConfig) { c.Credentials = nil }, factory: factory},
		{name: "no channels", mutate: func(c *SchedulerConfig) { c.Channels = nil }, factory: factory},
		{name: "no messages", mutate: func(c *SchedulerConfig) { c.Messages = nil }, factory: factory},
		{name: "no factory", mutate: func(*SchedulerConfig) {}},
		{name: "probability above one", mutate: func(c *SchedulerConfig) { c.ReplyProbability = 1.5 }, factory: factory},
		{name: "negative probability", mutate: func(c *SchedulerConfig) { c.ReplyProbability = -0.1 }, factory: factory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			_, err := NewScheduler(cfg, tt.factory, nil)

			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindConfig))
		})
	}

	scheduler, err := NewScheduler(valid, factory, nil)
	require.NoError(t, err)
	assert.NotNil(t, scheduler)
}
