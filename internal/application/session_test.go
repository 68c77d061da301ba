package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	session  *Session
	dialer   *fakeDialer
	facility *fakeFacility
	store    *TranscriptStore
}

func newSessionFixture(t *testing.T, history ports.EndpointRepository, opts SessionOptions) sessionFixture {
	t.Helper()

	dialer := newFakeDialer()
	facility := newFakeFacility(wifi())
	store := NewTranscriptStore(&fixedClock{})
	session := NewSession(
		NewConnectionManager(dialer, ConnectionOptions{}),
		store,
		NewNetworkMonitor(facility, nil),
		history,
		opts,
	)
	t.Cleanup(session.Close)

	return sessionFixture{session: session, dialer: dialer, facility: facility, store: store}
}

func connectSession(t *testing.T, f sessionFixture) *fakeConn {
	t.Helper()

	conn := newFakeConn()
	require.NoError(t, f.session.Connect(context.Background(), testAddress))
	f.dialer.accept(conn)
	require.Eventually(t, func() bool { return f.session.Status() == domain.StatusConnected }, waitFor, tick)
	require.Eventually(t, func() bool { return f.store.Len() == 3 }, waitFor, tick)
	return conn
}

// returnsWithin fails the test if fn does not return in time.
func returnsWithin(t *testing.T, fn func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("call did not return")
	}
}

func lastText(entries []domain.TranscriptEntry) string {
	if len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1].Text
}

func TestSessionStartRecordsInitialAttachment(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})

	require.NoError(t, f.session.Start(context.Background()))
	require.NoError(t, f.session.Start(context.Background()))

	assert.Equal(t, []string{"📶 Network: WiFi"}, entryTexts(f.session.Entries()))
	attachment, known := f.session.Attachment()
	assert.True(t, known)
	assert.Equal(t, wifi(), attachment)
	assert.Equal(t, 1, f.facility.listenerCount())
}

func TestSessionRecordsNetworkChanges(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))

	var seen []domain.AttachmentType
	_, err := f.session.SubscribeNetwork(func(a domain.NetworkAttachment) { seen = append(seen, a.Type) })
	require.NoError(t, err)

	f.facility.report(ethernet())

	assert.Equal(t, []domain.AttachmentType{domain.AttachmentEthernet}, seen)
	assert.Equal(t, []string{
		"📶 Network: WiFi",
		"🔌 Network: Ethernet",
		"🎉 Ethernet detected! Physical link active",
	}, entryTexts(f.session.Entries()))
}

func TestSessionConnectAnnouncesAttachment(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{AnnounceNetwork: true})
	require.NoError(t, f.session.Start(context.Background()))

	conn := newFakeConn()
	require.NoError(t, f.session.Connect(context.Background(), testAddress))
	f.dialer.accept(conn)

	require.Eventually(t, func() bool { return len(conn.Writes()) == 1 }, waitFor, tick)
	assert.Equal(t, []string{"Connected from: WiFi"}, conn.Writes())
	require.Eventually(t, func() bool { return f.store.Len() == 4 }, waitFor, tick)

	entries := f.session.Entries()
	assert.Equal(t, []string{
		"📶 Network: WiFi",
		"✅ Connected to ws://host:1",
		"📶 Connected via WiFi",
		"Connected from: WiFi",
	}, entryTexts(entries))
	assert.Equal(t, domain.EntrySent, entries[3].Kind)
}

func TestSessionConnectWithoutAnnounce(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))

	conn := newFakeConn()
	require.NoError(t, f.session.Connect(context.Background(), testAddress))
	f.dialer.accept(conn)
	require.Eventually(t, func() bool { return f.session.Status() == domain.StatusConnected }, waitFor, tick)
	require.Eventually(t, func() bool { return f.store.Len() == 3 }, waitFor, tick)

	assert.Empty(t, conn.Writes())
}

func TestSessionConnectRemembersEndpoint(t *testing.T) {
	history := mocks.NewMockEndpointRepository(t)
	history.EXPECT().Remember(mock.Anything, testAddress).Return(nil).Once()
	f := newSessionFixture(t, history, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))

	require.NoError(t, f.session.Connect(context.Background(), "  "+testAddress+"  "))
	assert.Equal(t, testAddress, f.session.Address())
}

func TestSessionConnectToleratesHistoryFailure(t *testing.T) {
	history := mocks.NewMockEndpointRepository(t)
	history.EXPECT().Remember(mock.Anything, testAddress).Return(errors.New("disk full")).Once()
	f := newSessionFixture(t, history, SessionOptions{})

	require.NoError(t, f.session.Connect(context.Background(), testAddress))
	assert.Equal(t, domain.StatusConnecting, f.session.Status())
}

func TestSessionConnectRejectsInvalidAddressWithoutHistory(t *testing.T) {
	history := mocks.NewMockEndpointRepository(t)
	f := newSessionFixture(t, history, SessionOptions{})

	err := f.session.Connect(context.Background(), "http://host:1")
	require.ErrorIs(t, err, domain.ErrInvalidAddress)
	assert.Empty(t, f.dialer.Addresses())
}

func TestSessionHistory(t *testing.T) {
	history := mocks.NewMockEndpointRepository(t)
	endpoints := []domain.Endpoint{{Address: testAddress, Uses: 2}}
	history.EXPECT().List(mock.Anything).Return(endpoints, nil).Once()
	f := newSessionFixture(t, history, SessionOptions{})

	got, err := f.session.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, endpoints, got)

	empty := newSessionFixture(t, nil, SessionOptions{})
	got, err = empty.session.History(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionTestConnectivity(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))

	f.facility.mu.Lock()
	f.facility.current = ethernet()
	f.facility.mu.Unlock()

	got := f.session.TestConnectivity(context.Background())

	assert.Equal(t, ethernet(), got)
	assert.Equal(t, []string{
		"📶 Network: WiFi",
		"🔍 Testing connectivity...",
		"🔌 Network: Ethernet",
		"🎉 Ethernet detected! Physical link active",
	}, entryTexts(f.session.Entries()))
}

func TestSessionTestConnectivityRecordsFetchFailure(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))

	f.facility.mu.Lock()
	f.facility.fetchErr = errors.New("netlink unavailable")
	f.facility.mu.Unlock()

	got := f.session.TestConnectivity(context.Background())

	assert.Equal(t, domain.AttachmentUnknown, got.Type)
	assert.Equal(t, []string{
		"📶 Network: WiFi",
		"🔍 Testing connectivity...",
		"❓ Network: Unknown (no connection)",
	}, entryTexts(f.session.Entries()))
}

func TestSessionSendAndClear(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))

	require.ErrorIs(t, f.session.Send("hello"), domain.ErrNotConnected)
	require.NoError(t, f.session.Disconnect())

	f.session.ClearTranscript()
	assert.Empty(t, f.session.Entries())
}

func TestSessionCloseReleasesSubscriptions(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{AnnounceNetwork: true})
	require.NoError(t, f.session.Start(context.Background()))

	var transcriptCalls, eventCalls atomic.Int32
	_, err := f.session.SubscribeTranscript(func([]domain.TranscriptEntry) { transcriptCalls.Add(1) })
	require.NoError(t, err)
	_, err = f.session.SubscribeEvents(func(Event) { eventCalls.Add(1) })
	require.NoError(t, err)

	conn := newFakeConn()
	require.NoError(t, f.session.Connect(context.Background(), testAddress))
	f.dialer.accept(conn)
	// connecting, connected, and the announce
	require.Eventually(t, func() bool { return eventCalls.Load() == 3 }, waitFor, tick)
	require.Eventually(t, func() bool { return transcriptCalls.Load() == 3 }, waitFor, tick)

	f.session.Close()
	f.session.Close()

	f.facility.report(ethernet())
	f.store.Append("late", domain.EntryReceived)

	assert.Equal(t, 0, f.facility.listenerCount())
	assert.Equal(t, int32(3), transcriptCalls.Load())
	assert.Equal(t, int32(3), eventCalls.Load())
	assert.Equal(t, domain.StatusDisconnected, f.session.Status())
	assert.GreaterOrEqual(t, conn.CloseCalls(), 1)
}

func TestSessionRejectsUseAfterClose(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	f.session.Close()

	require.ErrorIs(t, f.session.Start(context.Background()), domain.ErrSessionClosed)
	_, err := f.session.SubscribeTranscript(func([]domain.TranscriptEntry) {})
	require.ErrorIs(t, err, domain.ErrSessionClosed)
	_, err = f.session.SubscribeEvents(func(Event) {})
	require.ErrorIs(t, err, domain.ErrSessionClosed)
	require.ErrorIs(t, f.session.Connect(context.Background(), testAddress), domain.ErrSessionClosed)
}

func TestSessionTranscriptListenerMayTestConnectivityOnConnect(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))

	_, err := f.session.SubscribeTranscript(func(entries []domain.TranscriptEntry) {
		if lastText(entries) == "✅ Connected to ws://host:1" {
			f.session.TestConnectivity(context.Background())
		}
	})
	require.NoError(t, err)

	require.NoError(t, f.session.Connect(context.Background(), testAddress))
	f.dialer.accept(newFakeConn())

	require.Eventually(t, func() bool { return f.store.Len() == 5 }, waitFor, tick)
	assert.Equal(t, []string{
		"📶 Network: WiFi",
		"✅ Connected to ws://host:1",
		"📶 Connected via WiFi",
		"🔍 Testing connectivity...",
		"📶 Network: WiFi",
	}, entryTexts(f.session.Entries()))
}

func TestSessionTranscriptListenerMaySendOnNetworkChange(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))
	conn := connectSession(t, f)

	_, err := f.session.SubscribeTranscript(func(entries []domain.TranscriptEntry) {
		if lastText(entries) == "🔌 Network: Ethernet" {
			assert.NoError(t, f.session.Send("switched to ethernet"))
		}
	})
	require.NoError(t, err)

	returnsWithin(t, func() { f.facility.report(ethernet()) })

	require.Eventually(t, func() bool { return len(conn.Writes()) == 1 }, waitFor, tick)
	assert.Equal(t, []string{"switched to ethernet"}, conn.Writes())

	entries := f.session.Entries()
	assert.Equal(t, []string{
		"📶 Network: WiFi",
		"✅ Connected to ws://host:1",
		"📶 Connected via WiFi",
		"🔌 Network: Ethernet",
		"🎉 Ethernet detected! Physical link active",
		"switched to ethernet",
	}, entryTexts(entries))
	assert.Equal(t, domain.EntrySent, entries[5].Kind)
}

func TestSessionTranscriptListenerMaySendOnNote(t *testing.T) {
	f := newSessionFixture(t, nil, SessionOptions{})
	require.NoError(t, f.session.Start(context.Background()))
	conn := connectSession(t, f)

	_, err := f.session.SubscribeTranscript(func(entries []domain.TranscriptEntry) {
		if lastText(entries) == "🔍 Testing connectivity..." {
			assert.NoError(t, f.session.Send("checking"))
		}
	})
	require.NoError(t, err)

	returnsWithin(t, func() { f.session.TestConnectivity(context.Background()) })

	require.Eventually(t, func() bool { return len(conn.Writes()) == 1 }, waitFor, tick)
	assert.Equal(t, []string{
		"📶 Network: WiFi",
		"✅ Connected to ws://host:1",
		"📶 Connected via WiFi",
		"🔍 Testing connectivity...",
		"checking",
		"📶 Network: WiFi",
	}, entryTexts(f.session.Entries()))
}
