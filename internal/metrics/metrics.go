package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu               sync.RWMutex
	FlowsStarted     int64
	FlowsCompleted   int64
	QuestionsAsked   int64
	AnswersAccepted  int64
	ReportsGenerated int64
	APICallsTotal    int64
	APICallsFailed   int64
	LastUpdateTime   time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementFlowsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlowsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementFlowsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlowsCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsAsked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAsked++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAnswersAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersAccepted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementReportsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsGenerated++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICallsTotal++
	if !success {
		m.APICallsFailed++
	}
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		FlowsStarted:     m.FlowsStarted,
		FlowsCompleted:   m.FlowsCompleted,
		QuestionsAsked:   m.QuestionsAsked,
		AnswersAccepted:  m.AnswersAccepted,
		ReportsGenerated: m.ReportsGenerated,
		APICallsTotal:    m.APICallsTotal,
		APICallsFailed:   m.APICallsFailed,
		LastUpdateTime:   m.LastUpdateTime,
	}
}
