package sensor_test

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/multierr"

	"github.com/CristiGvl/picoSensingKit/internal/logger"
	"github.com/CristiGvl/picoSensingKit/internal/native"
	"github.com/CristiGvl/picoSensingKit/internal/platform"
	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

type readingRecorder struct {
	mu       sync.Mutex
	readings []sensor.Reading
}

func (r *readingRecorder) OnReading(_ sensor.Kind, reading sensor.Reading) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append(r.readings, reading)
}

func (r *readingRecorder) Readings() []sensor.Reading {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sensor.Reading(nil), r.readings...)
}

func sourcesOf(clk clock.Clock, types ...native.Type) []native.Source {
	var sources []native.Source
	for _, src := range native.SyntheticSources(clk) {
		for _, t := range types {
			if src.Sensor().Type == t {
				sources = append(sources, src)
			}
		}
	}
	return sources
}

var _ = ginkgo.Describe("Kit", func() {
	var (
		clk     *clock.Mock
		manager *native.PollingManager
		kit     *sensor.Kit
	)

	newKit := func(level platform.APILevel, types ...native.Type) {
		manager = native.NewPollingManager(level, sourcesOf(clk, types...),
			native.WithClock(clk), native.WithLogger(logger.Nop()))
		kit = sensor.NewKit(manager, sensor.WithClock(clk), sensor.WithLogger(logger.Nop()))
	}

	ginkgo.BeforeEach(func() {
		clk = clock.NewMock()
		newKit(platform.CurrentAPILevel, native.TypeAccelerometer, native.TypeGyroscope, native.TypeStepCounter)
	})

	ginkgo.AfterEach(func() {
		gomega.Expect(kit.Close()).To(gomega.Succeed())
		manager.Close()
	})

	ginkgo.Context("registration", func() {
		ginkgo.It("registers a kind once", func() {
			gomega.Expect(kit.Register(sensor.Accelerometer)).To(gomega.Succeed())
			gomega.Expect(kit.IsRegistered(sensor.Accelerometer)).To(gomega.BeTrue())
			gomega.Expect(kit.Register(sensor.Accelerometer)).To(gomega.MatchError(sensor.ErrAlreadyRegistered))
		})

		ginkgo.It("rejects values outside the enumeration", func() {
			gomega.Expect(kit.Register(sensor.Kind(77))).To(gomega.MatchError(sensor.ErrUnknownKind))
		})

		ginkgo.It("reports unregistered kinds", func() {
			gomega.Expect(kit.StartSensing(sensor.Gyroscope)).To(gomega.MatchError(sensor.ErrNotRegistered))
			gomega.Expect(kit.StopSensing(sensor.Gyroscope)).To(gomega.MatchError(sensor.ErrNotRegistered))
			gomega.Expect(kit.Deregister(sensor.Gyroscope)).To(gomega.MatchError(sensor.ErrNotRegistered))
			_, err := kit.Subscribe(sensor.Gyroscope, &readingRecorder{})
			gomega.Expect(err).To(gomega.MatchError(sensor.ErrNotRegistered))
			_, err = kit.IsSensing(sensor.Gyroscope)
			gomega.Expect(err).To(gomega.MatchError(sensor.ErrNotRegistered))
		})

		ginkgo.It("stops a sensing module when deregistering it", func() {
			gomega.Expect(kit.Register(sensor.Gyroscope)).To(gomega.Succeed())
			gomega.Expect(kit.StartSensing(sensor.Gyroscope)).To(gomega.Succeed())
			module, err := kit.Module(sensor.Gyroscope)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(kit.Deregister(sensor.Gyroscope)).To(gomega.Succeed())
			gomega.Expect(module.IsSensing()).To(gomega.BeFalse())
			gomega.Expect(kit.IsRegistered(sensor.Gyroscope)).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("sensing", func() {
		ginkgo.It("delivers polled readings to subscribers", func() {
			recorder := &readingRecorder{}
			gomega.Expect(kit.Register(sensor.Accelerometer)).To(gomega.Succeed())
			_, err := kit.Subscribe(sensor.Accelerometer, recorder)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(kit.StartSensing(sensor.Accelerometer)).To(gomega.Succeed())
			gomega.Expect(kit.IsSensing(sensor.Accelerometer)).To(gomega.BeTrue())

			clk.Add(200 * time.Millisecond)
			gomega.Eventually(recorder.Readings).Should(gomega.HaveLen(1))

			reading := recorder.Readings()[0]
			gomega.Expect(reading.Kind()).To(gomega.Equal(sensor.Accelerometer))
			gomega.Expect(reading.Time()).To(gomega.Equal((200 * time.Millisecond).Nanoseconds()))
		})

		ginkgo.It("stops delivery after StopSensing", func() {
			recorder := &readingRecorder{}
			gomega.Expect(kit.Register(sensor.Gyroscope)).To(gomega.Succeed())
			_, _ = kit.Subscribe(sensor.Gyroscope, recorder)
			gomega.Expect(kit.StartSensing(sensor.Gyroscope)).To(gomega.Succeed())

			clk.Add(200 * time.Millisecond)
			gomega.Eventually(recorder.Readings).Should(gomega.HaveLen(1))

			gomega.Expect(kit.StopSensing(sensor.Gyroscope)).To(gomega.Succeed())
			gomega.Expect(kit.StopSensing(sensor.Gyroscope)).To(gomega.Succeed())
			clk.Add(time.Second)
			gomega.Consistently(recorder.Readings, 100*time.Millisecond).Should(gomega.HaveLen(1))
		})

		ginkgo.It("collects every failure from StartAll", func() {
			for _, k := range []sensor.Kind{sensor.Accelerometer, sensor.Light, sensor.Battery} {
				gomega.Expect(kit.Register(k)).To(gomega.Succeed())
			}

			err := kit.StartAll()
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(multierr.Errors(err)).To(gomega.HaveLen(2))
			gomega.Expect(err).To(gomega.MatchError(sensor.ErrRegistrationFailed))
			gomega.Expect(err).To(gomega.MatchError(sensor.ErrUnsupportedKind))
			gomega.Expect(kit.IsSensing(sensor.Accelerometer)).To(gomega.BeTrue())

			gomega.Expect(kit.StopAll()).To(gomega.Succeed())
			gomega.Expect(kit.IsSensing(sensor.Accelerometer)).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("status", func() {
		ginkgo.It("describes every kind", func() {
			gomega.Expect(kit.Register(sensor.Gyroscope)).To(gomega.Succeed())
			gomega.Expect(kit.StartSensing(sensor.Gyroscope)).To(gomega.Succeed())

			statuses := kit.Statuses()
			gomega.Expect(statuses).To(gomega.HaveLen(len(sensor.Kinds())))

			gomega.Expect(statuses[sensor.Gyroscope]).To(gomega.Equal(sensor.Status{
				Kind:       sensor.Gyroscope,
				Native:     true,
				SensorType: "gyroscope",
				SensorName: "Synthetic gyroscope",
				Available:  true,
				Registered: true,
				Sensing:    true,
			}))
			gomega.Expect(statuses[sensor.Light].Available).To(gomega.BeFalse())
			gomega.Expect(statuses[sensor.Light].Reason).To(gomega.ContainSubstring("no light sensor"))
			gomega.Expect(statuses[sensor.Location].Native).To(gomega.BeFalse())
			gomega.Expect(statuses[sensor.Location].Reason).To(gomega.Equal("not a native sensor: location"))
		})

		ginkgo.It("reports API level gating", func() {
			newKit(platform.KitKat-1, native.TypeStepCounter)

			status, err := kit.Status(sensor.StepCounter)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status.Available).To(gomega.BeFalse())
			gomega.Expect(status.Reason).To(gomega.ContainSubstring("unsupported on this OS version"))
		})
	})
})
