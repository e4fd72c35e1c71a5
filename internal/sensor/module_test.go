package sensor_test

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/CristiGvl/picoSensingKit/internal/native"
	mocknative "github.com/CristiGvl/picoSensingKit/internal/native/mock"
	"github.com/CristiGvl/picoSensingKit/internal/platform"
	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

type delivery struct {
	listener int
	kind     sensor.Kind
	reading  sensor.Reading
}

var _ = ginkgo.Describe("Module", func() {
	var (
		ctrl       *gomock.Controller
		manager    *mocknative.MockManager
		clk        *clock.Mock
		registered native.EventListener
	)

	rotationSensor := native.Sensor{Type: native.TypeRotationVector, Name: "rotation"}
	gravitySensor := native.Sensor{Type: native.TypeGravity, Name: "gravity"}

	expectRegistration := func(s native.Sensor) {
		manager.EXPECT().APILevel().Return(platform.CurrentAPILevel)
		manager.EXPECT().DefaultSensor(s.Type).Return(s, true)
		manager.EXPECT().
			RegisterListener(gomock.Any(), s, native.DelayNormal).
			DoAndReturn(func(l native.EventListener, _ native.Sensor, _ native.Delay) bool {
				registered = l
				return true
			})
	}

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		manager = mocknative.NewMockManager(ctrl)
		clk = clock.NewMock()
		clk.Set(time.UnixMilli(1700000000123))
		registered = nil
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.Context("Start", func() {
		ginkgo.It("registers at the normal delay and becomes sensing", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			expectRegistration(rotationSensor)

			gomega.Expect(module.Start()).To(gomega.Succeed())
			gomega.Expect(module.IsSensing()).To(gomega.BeTrue())
			gomega.Expect(module.State()).To(gomega.Equal(sensor.Sensing))
			gomega.Expect(registered).NotTo(gomega.BeNil())
		})

		ginkgo.It("is a no-op when already sensing", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			expectRegistration(rotationSensor)

			gomega.Expect(module.Start()).To(gomega.Succeed())
			gomega.Expect(module.Start()).To(gomega.Succeed())
			gomega.Expect(module.IsSensing()).To(gomega.BeTrue())
		})

		ginkgo.It("propagates resolution failures and stays idle", func() {
			module := sensor.NewModule(sensor.StepCounter, manager)
			manager.EXPECT().APILevel().Return(platform.KitKat - 1)

			err := module.Start()
			gomega.Expect(err).To(gomega.MatchError(sensor.ErrUnsupportedKind))
			gomega.Expect(err).To(gomega.BeAssignableToTypeOf(&sensor.UnsupportedKindError{}))
			gomega.Expect(module.IsSensing()).To(gomega.BeFalse())
		})

		ginkgo.It("rejects kinds without a native sensor", func() {
			module := sensor.NewModule(sensor.Battery, manager)
			manager.EXPECT().APILevel().Return(platform.CurrentAPILevel)

			gomega.Expect(module.Start()).To(gomega.MatchError(sensor.ErrUnsupportedKind))
			gomega.Expect(module.State()).To(gomega.Equal(sensor.Idle))
		})

		ginkgo.It("fails when the device has no such sensor", func() {
			module := sensor.NewModule(sensor.Light, manager)
			manager.EXPECT().APILevel().Return(platform.CurrentAPILevel)
			manager.EXPECT().DefaultSensor(native.TypeLight).Return(native.Sensor{}, false)

			err := module.Start()
			gomega.Expect(err).To(gomega.MatchError(sensor.ErrRegistrationFailed))
			gomega.Expect(module.IsSensing()).To(gomega.BeFalse())
		})

		ginkgo.It("fails when the platform declines the listener", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			manager.EXPECT().APILevel().Return(platform.CurrentAPILevel)
			manager.EXPECT().DefaultSensor(native.TypeRotationVector).Return(rotationSensor, true)
			manager.EXPECT().RegisterListener(gomock.Any(), rotationSensor, native.DelayNormal).Return(false)

			err := module.Start()
			gomega.Expect(err).To(gomega.MatchError(sensor.ErrRegistrationFailed))
			gomega.Expect(module.IsSensing()).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Stop", func() {
		ginkgo.It("does nothing while idle", func() {
			module := sensor.NewModule(sensor.Rotation, manager)

			module.Stop()
			module.Stop()
			gomega.Expect(module.IsSensing()).To(gomega.BeFalse())
		})

		ginkgo.It("unregisters the listener it registered", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			expectRegistration(rotationSensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())

			manager.EXPECT().UnregisterListener(gomock.Any()).Do(func(l native.EventListener) {
				gomega.Expect(l).To(gomega.BeIdenticalTo(registered))
			})
			module.Stop()
			module.Stop()

			gomega.Expect(module.State()).To(gomega.Equal(sensor.Idle))
		})

		ginkgo.It("can start again after stopping", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			expectRegistration(rotationSensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())
			manager.EXPECT().UnregisterListener(gomock.Any())
			module.Stop()

			expectRegistration(rotationSensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())
			gomega.Expect(module.IsSensing()).To(gomega.BeTrue())
		})
	})

	ginkgo.Context("event delivery", func() {
		var deliveries []delivery

		listenerN := func(n int) sensor.Listener {
			return sensor.ListenerFunc(func(kind sensor.Kind, r sensor.Reading) {
				deliveries = append(deliveries, delivery{listener: n, kind: kind, reading: r})
			})
		}

		ginkgo.BeforeEach(func() {
			deliveries = nil
		})

		ginkgo.It("fans one rotation reading out to every listener in order", func() {
			module := sensor.NewModule(sensor.Rotation, manager, sensor.WithClock(clk))
			for i := 0; i < 3; i++ {
				module.Subscribe(listenerN(i))
			}
			expectRegistration(rotationSensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())

			registered.OnSensorChanged(native.Event{
				Sensor:    rotationSensor,
				Timestamp: 987654321,
				Values:    []float32{0.1, 0.2, 0.3, 0.4, 0.5},
			})

			want := sensor.RotationData{Timestamp: 987654321, X: 0.1, Y: 0.2, Z: 0.3, W: 0.4, EstimatedAccuracy: 0.5}
			gomega.Expect(deliveries).To(gomega.HaveLen(3))
			for i, d := range deliveries {
				gomega.Expect(d.listener).To(gomega.Equal(i))
				gomega.Expect(d.kind).To(gomega.Equal(sensor.Rotation))
				gomega.Expect(d.reading).To(gomega.Equal(want))
			}
		})

		ginkgo.It("stamps gravity readings with the delivery time", func() {
			module := sensor.NewModule(sensor.Gravity, manager, sensor.WithClock(clk))
			module.Subscribe(listenerN(0))
			expectRegistration(gravitySensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())

			registered.OnSensorChanged(native.Event{
				Sensor:    gravitySensor,
				Timestamp: 55,
				Values:    []float32{0.1, 9.8, 0.2},
			})

			gomega.Expect(deliveries).To(gomega.HaveLen(1))
			gomega.Expect(deliveries[0].reading).To(gomega.Equal(sensor.GravityData{Vector3: sensor.Vector3{
				Timestamp: 1700000000123, X: 0.1, Y: 9.8, Z: 0.2,
			}}))
		})

		ginkgo.It("produces one reading per event without filtering duplicates", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			module.Subscribe(listenerN(0))
			expectRegistration(rotationSensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())

			ev := native.Event{Sensor: rotationSensor, Timestamp: 1, Values: []float32{1, 0, 0, 0, 0}}
			registered.OnSensorChanged(ev)
			registered.OnSensorChanged(ev)

			gomega.Expect(deliveries).To(gomega.HaveLen(2))
		})

		ginkgo.It("ignores accuracy changes", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			module.Subscribe(listenerN(0))
			expectRegistration(rotationSensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())

			registered.OnAccuracyChanged(rotationSensor, native.AccuracyLow)
			gomega.Expect(deliveries).To(gomega.BeEmpty())
		})

		ginkgo.It("stops delivering to an unsubscribed listener", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			first := module.Subscribe(listenerN(0))
			module.Subscribe(listenerN(1))
			expectRegistration(rotationSensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())

			gomega.Expect(module.Unsubscribe(first)).To(gomega.Succeed())
			gomega.Expect(module.Unsubscribe(first)).To(gomega.MatchError(sensor.ErrListenerNotFound))
			gomega.Expect(module.ListenerCount()).To(gomega.Equal(1))

			registered.OnSensorChanged(native.Event{Sensor: rotationSensor, Values: make([]float32, 5)})
			gomega.Expect(deliveries).To(gomega.HaveLen(1))
			gomega.Expect(deliveries[0].listener).To(gomega.Equal(1))
		})

		ginkgo.It("lets a listener subscribe another one during fan-out", func() {
			module := sensor.NewModule(sensor.Rotation, manager)
			module.Subscribe(sensor.ListenerFunc(func(sensor.Kind, sensor.Reading) {
				module.Subscribe(listenerN(1))
			}))
			expectRegistration(rotationSensor)
			gomega.Expect(module.Start()).To(gomega.Succeed())

			registered.OnSensorChanged(native.Event{Sensor: rotationSensor, Values: make([]float32, 5)})
			gomega.Expect(deliveries).To(gomega.BeEmpty())
			gomega.Expect(module.ListenerCount()).To(gomega.Equal(2))
		})
	})
})
