package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"musafir/config"
	"musafir/infras/otel/mocks"
	s3Mocks "musafir/infras/s3/mocks"
	bookingMocks "musafir/internal/domains/booking/mocks"
	hotelMocks "musafir/internal/domains/hotel/mocks"
	"musafir/internal/domains/hotel/model"
	"musafir/internal/domains/hotel/model/dto"
	"musafir/internal/domains/hotel/service"
	roomMocks "musafir/internal/domains/room/mocks"
	cacheMocks "musafir/shared/cache/mocks"
	"musafir/shared/constant"
)

func newHotelService(t *testing.T) (service.Hotel, *hotelMocks.MockHotel, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "musafir-media"

	svc := service.New(mockRepo, mockRoomRepo, mockBookingRepo, cfg, mockCache, mockOtel, mockS3)

	return svc, mockRepo, mockCache, mockS3
}

func completeHotel(id string) model.Hotel {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	return model.Hotel{
		ID:            id,
		Name:          "Dar Al Hijra",
		Description:   "Walking distance from the Haram",
		Address:       "King Fahd Road",
		City:          "Madinah",
		State:         "Al Madinah",
		Zip:           "42311",
		Country:       "SA",
		StarRating:    4,
		AveragePrice:  220,
		CheckInTime:   "14:00",
		CheckOutTime:  "12:00",
		AvailableFrom: &from,
		AvailableTo:   &to,
		Amenities:     []string{"wifi", "parking"},
		Tags:          []string{"family"},
		Status:        constant.StatusDraft,
	}
}

func TestHotelService_Create(t *testing.T) {
	t.Run("persists a draft and returns it", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newHotelService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		var wg sync.WaitGroup
		wg.Add(3)
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string) error {
				wg.Done()
				return nil
			}).
			Times(3)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "vendor-1")
		res, err := svc.Create(ctx, dto.CreateHotelRequest{Name: "Dar Al Hijra"})
		wg.Wait()

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Dar Al Hijra", res.Name)
		assert.Equal(t, constant.StatusDraft, res.Status)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, _, _ := newHotelService(t)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := svc.Create(context.Background(), dto.CreateHotelRequest{Name: "Dar Al Hijra"})

		assert.Error(t, err)
	})
}

func TestHotelService_Complete(t *testing.T) {
	t.Run("already complete is a no-op", func(t *testing.T) {
		svc, mockRepo, _, _ := newHotelService(t)

		hotel := completeHotel("hotel-1")
		hotel.Status = constant.StatusComplete

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)

		err := svc.Complete(context.Background(), "hotel-1")

		assert.NoError(t, err)
	})

	t.Run("stops at the first missing field without writing", func(t *testing.T) {
		svc, mockRepo, _, _ := newHotelService(t)

		hotel := completeHotel("hotel-1")
		hotel.CheckInTime = ""
		hotel.Amenities = nil

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)

		err := svc.Complete(context.Background(), "hotel-1")

		assert.EqualError(t, err, "Hotel Check-in Time is Required")
	})

	t.Run("promotes a finished draft", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newHotelService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completeHotel("hotel-1"), nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, constant.StatusComplete, req[model.FieldStatus])
				return nil
			})

		var wg sync.WaitGroup
		wg.Add(4)
		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string) error {
				wg.Done()
				return nil
			})
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string) error {
				wg.Done()
				return nil
			}).
			Times(3)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "vendor-1")
		err := svc.Complete(ctx, "hotel-1")
		wg.Wait()

		assert.NoError(t, err)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		svc, mockRepo, _, _ := newHotelService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{}, nil)

		err := svc.Complete(context.Background(), "missing")

		assert.EqualError(t, err, "hotel not found")
	})
}

func TestHotelService_Step(t *testing.T) {
	t.Run("next advances and persists the step", func(t *testing.T) {
		svc, mockRepo, mockCache, _ := newHotelService(t)

		hotel := completeHotel("hotel-1")
		hotel.RegistrationStep = model.RegistrationSteps()[0]

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		var wg sync.WaitGroup
		wg.Add(4)
		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string) error {
				wg.Done()
				return nil
			})
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string) error {
				wg.Done()
				return nil
			}).
			Times(3)

		res, err := svc.Step(context.Background(), dto.StepRequest{Action: "next"}, "hotel-1")
		wg.Wait()

		assert.NoError(t, err)
		assert.Equal(t, model.RegistrationSteps()[1], res.Step)
		assert.Equal(t, 2, res.Position)
		assert.Equal(t, len(model.RegistrationSteps()), res.Total)
		assert.False(t, res.IsFirst)
	})

	t.Run("previous on the first step stays put", func(t *testing.T) {
		svc, mockRepo, _, _ := newHotelService(t)

		hotel := completeHotel("hotel-1")
		hotel.RegistrationStep = model.RegistrationSteps()[0]

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)

		res, err := svc.Step(context.Background(), dto.StepRequest{Action: "previous"}, "hotel-1")

		assert.NoError(t, err)
		assert.Equal(t, model.RegistrationSteps()[0], res.Step)
		assert.Equal(t, 1, res.Position)
		assert.True(t, res.IsFirst)
	})

	t.Run("completed registrations reject step changes", func(t *testing.T) {
		svc, mockRepo, _, _ := newHotelService(t)

		hotel := completeHotel("hotel-1")
		hotel.Status = constant.StatusComplete

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)

		_, err := svc.Step(context.Background(), dto.StepRequest{Action: "next"}, "hotel-1")

		assert.EqualError(t, err, "hotel registration is already complete")
	})
}

func TestHotelService_Delete(t *testing.T) {
	t.Run("removes the listing and its stored images", func(t *testing.T) {
		svc, mockRepo, mockCache, mockS3 := newHotelService(t)

		hotel := completeHotel("hotel-1")
		hotel.Images = []string{
			"https://musafir-media.s3.amazonaws.com/hotel/front.jpg",
			"https://musafir-media.s3.amazonaws.com/hotel/lobby.jpg",
		}

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		var wg sync.WaitGroup
		wg.Add(6)

		mockS3.EXPECT().
			GetObjectNameFromURL("musafir-media", hotel.Images[0]).
			Return("hotel/front.jpg")
		mockS3.EXPECT().
			GetObjectNameFromURL("musafir-media", hotel.Images[1]).
			Return("hotel/lobby.jpg")
		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "musafir-media", gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, string, string) error {
				wg.Done()
				return nil
			}).
			Times(2)
		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string) error {
				wg.Done()
				return nil
			})
		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string) error {
				wg.Done()
				return nil
			}).
			Times(3)

		err := svc.Delete(context.Background(), "hotel-1")
		wg.Wait()

		assert.NoError(t, err)
	})

	t.Run("unknown hotel deletes nothing", func(t *testing.T) {
		svc, mockRepo, _, _ := newHotelService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{}, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.EqualError(t, err, "hotel not found")
	})
}
