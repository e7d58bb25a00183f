package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"musafir/config"
	"musafir/infras/otel/mocks"
	s3Mocks "musafir/infras/s3/mocks"
	propertyMocks "musafir/internal/domains/property/mocks"
	"musafir/internal/domains/property/model"
	"musafir/internal/domains/property/service"
	cacheMocks "musafir/shared/cache/mocks"
)

func newPropertyService(t *testing.T) (service.Property, *propertyMocks.MockProperty, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := propertyMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "musafir-media"

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), mockS3)

	return svc, mockRepo, mockCache, mockS3
}

func TestPropertyService_Delete(t *testing.T) {
	t.Run("removes the listing and its stored images", func(t *testing.T) {
		svc, mockRepo, mockCache, mockS3 := newPropertyService(t)

		property := model.Property{
			ID:    "property-1",
			Title: "Corniche Apartment",
			Images: []string{
				"https://musafir-media.s3.amazonaws.com/property/living-room.jpg",
			},
		}

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(property, nil)
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		var wg sync.WaitGroup
		wg.Add(4)

		mockS3.EXPECT().
			GetObjectNameFromURL("musafir-media", property.Images[0]).
			Return("property/living-room.jpg")
		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "musafir-media", model.EntityName, "property/living-room.jpg").
			DoAndReturn(func(context.Context, string, string, string) error {
				wg.Done()
				return nil
			})
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
			Times(2)

		err := svc.Delete(context.Background(), "property-1")
		wg.Wait()

		assert.NoError(t, err)
	})

	t.Run("unknown property deletes nothing", func(t *testing.T) {
		svc, mockRepo, _, _ := newPropertyService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Property{}, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.EqualError(t, err, "property not found")
	})
}
