package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mall-api/internal/model"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cancel1 := hub.Subscribe("u1")
	ch2, cancel2 := hub.Subscribe("u1")
	defer cancel1()
	defer cancel2()

	n := &model.Notification{UserID: "u1", Title: "hello"}
	hub.Publish("u1", n)

	for _, ch := range []<-chan *model.Notification{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, "hello", got.Title)
		default:
			t.Fatal("subscriber did not receive notification")
		}
	}
}

func TestHub_PublishIsScopedToUser(t *testing.T) {
	hub := NewHub()

	chA, cancelA := hub.Subscribe("alice")
	defer cancelA()
	chB, cancelB := hub.Subscribe("bob")
	defer cancelB()

	hub.Publish("alice", &model.Notification{UserID: "alice"})

	require.Len(t, chA, 1)
	assert.Len(t, chB, 0)
}

func TestHub_PublishWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Publish("nobody", &model.Notification{UserID: "nobody"})
	assert.Zero(t, hub.SubscriberCount("nobody"))
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe("u1")
	require.Equal(t, 1, hub.SubscriberCount("u1"))

	cancel()
	assert.Zero(t, hub.SubscriberCount("u1"))

	// 取消后发布不 panic、不送达
	hub.Publish("u1", &model.Notification{UserID: "u1"})
}

// 订阅者缓冲满时发布方不阻塞，多余消息被丢弃
func TestHub_FullSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("u1")
	defer cancel()

	for i := 0; i < 32; i++ {
		hub.Publish("u1", &model.Notification{UserID: "u1"})
	}
	assert.Equal(t, 16, len(ch))
}
