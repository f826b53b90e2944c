package usecase

import (
	"sync"
	"time"

	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/pkg/errors"
)

// PointBuffer - буфер точек одного набора данных.
// Точки только дописываются (Append) или заменяются целиком (Replace),
// поэтому выданные снимки никогда не меняются.
type PointBuffer struct {
	mu        sync.RWMutex
	category  domain.Category
	points    []domain.GeoPoint
	state     domain.DatasetState
	err       error
	version   uint64
	lastSeq   uint64
	updatedAt time.Time
	notify    func(domain.Category)
}

func newPointBuffer(category domain.Category, notify func(domain.Category)) *PointBuffer {
	return &PointBuffer{
		category: category,
		state:    domain.DatasetPending,
		notify:   notify,
	}
}

// Append дописывает пачку точек (постепенная загрузка)
func (b *PointBuffer) Append(points []domain.GeoPoint) {
	if len(points) == 0 {
		return
	}

	b.mu.Lock()
	b.points = append(b.points, points...)
	b.touch()
	b.mu.Unlock()

	b.notify(b.category)
}

// MarkReady помечает набор полностью загруженным
func (b *PointBuffer) MarkReady() {
	b.mu.Lock()
	b.state = domain.DatasetReady
	b.err = nil
	b.touch()
	b.mu.Unlock()

	b.notify(b.category)
}

// MarkFailed помечает загрузку неудачной; уже загруженные точки сохраняются
func (b *PointBuffer) MarkFailed(err error) {
	b.mu.Lock()
	b.state = domain.DatasetFailed
	b.err = err
	b.touch()
	b.mu.Unlock()

	b.notify(b.category)
}

// FailIfPending помечает набор упавшим, только если он ещё ни разу не был готов
func (b *PointBuffer) FailIfPending(err error) bool {
	b.mu.Lock()
	if b.state != domain.DatasetPending {
		b.mu.Unlock()
		return false
	}
	b.state = domain.DatasetFailed
	b.err = err
	b.touch()
	b.mu.Unlock()

	b.notify(b.category)
	return true
}

// Replace заменяет содержимое ответом живого фида.
// Применяется только ответ на более поздний запрос: seq выдаётся в момент запроса.
func (b *PointBuffer) Replace(seq uint64, points []domain.GeoPoint) bool {
	b.mu.Lock()
	if seq <= b.lastSeq {
		b.mu.Unlock()
		return false
	}
	b.lastSeq = seq
	b.points = points
	b.state = domain.DatasetReady
	b.err = nil
	b.touch()
	b.mu.Unlock()

	b.notify(b.category)
	return true
}

// Snapshot возвращает неизменяемый срез текущих точек
func (b *PointBuffer) Snapshot() domain.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.points)
	return domain.Snapshot{
		Category: b.category,
		Version:  b.version,
		Points:   b.points[:n:n],
	}
}

// State возвращает состояние набора
func (b *PointBuffer) State() domain.DatasetState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Status возвращает состояние для /status
func (b *PointBuffer) Status() domain.DatasetStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()

	status := domain.DatasetStatus{
		Category:  b.category,
		State:     b.state,
		Points:    len(b.points),
		Version:   b.version,
		UpdatedAt: b.updatedAt,
	}
	if b.err != nil {
		status.Error = b.err.Error()
	}
	return status
}

// touch вызывается под блокировкой записи
func (b *PointBuffer) touch() {
	b.version++
	b.updatedAt = time.Now()
}

// DatasetStore владеет буферами всех категорий
type DatasetStore struct {
	buffers map[domain.Category]*PointBuffer

	mu       sync.RWMutex
	onChange func(domain.Category)
}

// NewDatasetStore создает хранилище с пустыми буферами для всех категорий
func NewDatasetStore() *DatasetStore {
	s := &DatasetStore{
		buffers: make(map[domain.Category]*PointBuffer, len(domain.Categories)),
	}
	for _, c := range domain.Categories {
		s.buffers[c] = newPointBuffer(c, s.changed)
	}
	return s
}

// OnChange задает обработчик любых изменений наборов данных
func (s *DatasetStore) OnChange(fn func(domain.Category)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *DatasetStore) changed(c domain.Category) {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()

	if fn != nil {
		fn(c)
	}
}

// Buffer возвращает буфер категории
func (s *DatasetStore) Buffer(c domain.Category) *PointBuffer {
	return s.buffers[c]
}

// Statuses возвращает состояния наборов в каноническом порядке
func (s *DatasetStore) Statuses() []domain.DatasetStatus {
	statuses := make([]domain.DatasetStatus, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		statuses = append(statuses, s.buffers[c].Status())
	}
	return statuses
}

// Snapshot возвращает снимки всех трёх наборов, только если все они готовы.
// Упавший набор важнее незагруженного: ожидание его не исправит.
func (s *DatasetStore) Snapshot() (map[domain.Category]domain.Snapshot, error) {
	statuses := s.Statuses()

	details := make(map[string]interface{}, len(statuses))
	failed, pending := false, false
	for _, st := range statuses {
		details[string(st.Category)] = string(st.State)
		switch st.State {
		case domain.DatasetFailed:
			failed = true
			details[string(st.Category)+"_error"] = st.Error
		case domain.DatasetPending:
			pending = true
		}
	}

	if failed {
		return nil, errors.ErrDatasetLoadFailed.WithDetails(details)
	}
	if pending {
		return nil, errors.ErrDatasetsNotReady.WithDetails(details)
	}

	snapshots := make(map[domain.Category]domain.Snapshot, len(domain.Categories))
	for _, c := range domain.Categories {
		snapshots[c] = s.buffers[c].Snapshot()
	}
	return snapshots, nil
}
