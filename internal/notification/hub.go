// Package notification 提供进程内通知分发。
// Hub 是显式持有的连接注册表：在 main 中构造一次、按引用传递，
// 取代散落的全局 socket map。
package notification

import (
	"sync"

	"go.uber.org/zap"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/pkg/logger"
)

// Hub 按用户维护订阅通道，推送尽力而为：订阅者缓冲满则丢弃
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan *model.Notification]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan *model.Notification]struct{})}
}

// Subscribe 注册订阅者，返回接收通道与取消函数
func (h *Hub) Subscribe(userID string) (<-chan *model.Notification, func()) {
	ch := make(chan *model.Notification, 16)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan *model.Notification]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

// Publish 向用户的所有在线订阅者推送，非阻塞
func (h *Hub) Publish(userID string, n *model.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- n:
		default:
			logger.Warn("notification subscriber buffer full, drop",
				zap.String("user", userID), zap.String("notification", n.ID))
		}
	}
}

// SubscriberCount 当前用户的在线订阅数（采样值）
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
