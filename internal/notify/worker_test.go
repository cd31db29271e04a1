package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tally/internal/notify"
	"tally/internal/notify/mocks"
)

type WorkerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	sink      *mocks.MockSink
	metrics   *notify.Metrics
	publisher *notify.Publisher
	worker    *notify.Worker
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sink = mocks.NewMockSink(s.ctrl)
	s.metrics = notify.NewMetrics(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.publisher = notify.NewPublisher(8, notify.WithLogger(logger), notify.WithMetrics(s.metrics))
	s.worker = notify.NewWorker(s.publisher, s.sink,
		notify.WithBatchSize(2),
		notify.WithWorkerLogger(logger),
		notify.WithWorkerMetrics(s.metrics),
	)
}

func (s *WorkerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *WorkerSuite) emit(n int) {
	ctx := context.Background()
	for i := 0; i < n; i++ {
		s.Require().NoError(s.publisher.Emit(ctx, notify.NewEvent("vote_cast", "k", time.Now(), i)))
	}
}

func (s *WorkerSuite) TestFlushDeliversInBatches() {
	s.emit(5)

	gomock.InOrder(
		s.sink.EXPECT().Deliver(gomock.Any(), gomock.Len(2)).Return(nil),
		s.sink.EXPECT().Deliver(gomock.Any(), gomock.Len(2)).Return(nil),
		s.sink.EXPECT().Deliver(gomock.Any(), gomock.Len(1)).Return(nil),
	)

	s.worker.Flush(context.Background())

	s.Zero(s.publisher.Buffer().Len())
	s.Equal(float64(5), testutil.ToFloat64(s.metrics.Delivered))
	s.Equal(float64(5), testutil.ToFloat64(s.metrics.Emitted.WithLabelValues("vote_cast")))
}

func (s *WorkerSuite) TestFailedBatchIsCountedAndSkipped() {
	s.emit(3)

	gomock.InOrder(
		s.sink.EXPECT().Deliver(gomock.Any(), gomock.Len(2)).Return(errors.New("broker down")),
		s.sink.EXPECT().Deliver(gomock.Any(), gomock.Len(1)).Return(nil),
	)

	s.worker.Flush(context.Background())

	s.Equal(float64(2), testutil.ToFloat64(s.metrics.DeliveryFailures))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Delivered))
}

func (s *WorkerSuite) TestRunFlushesOnShutdown() {
	s.emit(1)
	s.sink.EXPECT().Deliver(gomock.Any(), gomock.Len(1)).Return(nil).MaxTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.worker.Run(ctx)

	s.ErrorIs(err, context.Canceled)
	s.Zero(s.publisher.Buffer().Len())
}

func (s *WorkerSuite) TestOverflowIsCounted() {
	s.emit(10)
	s.Equal(float64(2), testutil.ToFloat64(s.metrics.Dropped))
	s.Equal(8, s.publisher.Buffer().Len())
}
