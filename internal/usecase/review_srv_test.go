package usecase

import (
	"sync"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository/mock"
	"movies-api/internal/dto/request"

	"github.com/google/uuid"
)

func reviewRequest(movie *entity.Movie) *request.CreateReviewRequest {
	return &request.CreateReviewRequest{
		MovieID:      movie.ID.String(),
		ReviewerName: "Roger",
		Comment:      "Two thumbs up",
		Rating:       5,
	}
}

func (s *ServiceTestSuite) TestReviewCreate() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)

	created, err := s.reviews.Create(s.ctx, reviewRequest(movie))
	s.Require().NoError(err)
	s.Equal(movie.ID.String(), created.MovieID)
	s.Equal(5, created.Rating)
	s.Equal(fixedNow, created.CreatedAt)
	s.Equal(1, s.store.CountReviews(movie.ID))
}

func (s *ServiceTestSuite) TestReviewCreateUnknownMovie() {
	_, err := s.reviews.Create(s.ctx, &request.CreateReviewRequest{
		MovieID:      uuid.NewString(),
		ReviewerName: "Roger",
		Comment:      "Missing",
		Rating:       3,
	})
	s.requireKind(KindValidation, err)
}

func (s *ServiceTestSuite) TestReviewCreateRatingOutOfRange() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	req := reviewRequest(movie)
	req.Rating = 6

	_, err := s.reviews.Create(s.ctx, req)
	s.requireKind(KindValidation, err)
	s.Zero(s.store.CountReviews(movie.ID))
}

func (s *ServiceTestSuite) TestReviewCapOlderMovie() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Gladiator", 2000, genre, nil)
	s.seedReviews(movie, MaxReviewsOlderMovie-1)

	_, err := s.reviews.Create(s.ctx, reviewRequest(movie))
	s.Require().NoError(err)

	reached, err := s.reviews.IsMaxReviews(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.True(reached)

	_, err = s.reviews.Create(s.ctx, reviewRequest(movie))
	s.requireKind(KindValidation, err)
	s.Equal(MaxReviewsOlderMovie, s.store.CountReviews(movie.ID))
}

func (s *ServiceTestSuite) TestReviewCapRecentMovie() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Tenet", 2020, genre, nil)
	s.seedReviews(movie, MaxReviewsRecentMovie-1)

	reached, err := s.reviews.IsMaxReviews(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.False(reached)

	_, err = s.reviews.Create(s.ctx, reviewRequest(movie))
	s.Require().NoError(err)

	_, err = s.reviews.Create(s.ctx, reviewRequest(movie))
	s.requireKind(KindValidation, err)
	s.Equal(MaxReviewsRecentMovie, s.store.CountReviews(movie.ID))
}

func (s *ServiceTestSuite) TestReviewCapHoldsUnderConcurrency() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Tenet", 2020, genre, nil)

	const writers = 20
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.reviews.Create(s.ctx, reviewRequest(movie))
		}(i)
	}
	wg.Wait()

	rejected := 0
	for _, err := range errs {
		if err != nil {
			s.Equal(KindValidation, KindOf(err))
			rejected++
		}
	}
	s.Equal(writers-MaxReviewsRecentMovie, rejected)
	s.Equal(MaxReviewsRecentMovie, s.store.CountReviews(movie.ID))
}

func (s *ServiceTestSuite) TestReviewUpdate() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	created, err := s.reviews.Create(s.ctx, reviewRequest(movie))
	s.Require().NoError(err)
	id := uuid.MustParse(created.ID)

	req := &request.UpdateReviewRequest{ReviewerName: "Gene", Comment: "Changed my mind", Rating: 2}
	s.Require().NoError(s.reviews.Update(s.ctx, id, req))

	got, err := s.reviews.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Gene", got.ReviewerName)
	s.Equal(2, got.Rating)
	s.Equal(2, got.Version)

	req.Version = intPtr(1)
	err = s.reviews.Update(s.ctx, id, req)
	s.requireKind(KindConcurrencyConflict, err)

	err = s.reviews.Update(s.ctx, uuid.New(), &request.UpdateReviewRequest{ReviewerName: "Gene", Comment: "x", Rating: 2})
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestReviewUpdateDeletedConcurrently() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	created, err := s.reviews.Create(s.ctx, reviewRequest(movie))
	s.Require().NoError(err)
	s.store.BeforeWrite = func(table string, op mock.Op, id uuid.UUID) {
		if table == mock.TableReviews && op == mock.OpUpdate {
			s.store.DeleteRow(mock.TableReviews, id)
		}
	}

	err = s.reviews.Update(s.ctx, uuid.MustParse(created.ID), &request.UpdateReviewRequest{ReviewerName: "Gene", Comment: "x", Rating: 2})
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestReviewDelete() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	created, err := s.reviews.Create(s.ctx, reviewRequest(movie))
	s.Require().NoError(err)
	id := uuid.MustParse(created.ID)

	s.Require().NoError(s.reviews.Delete(s.ctx, id))
	s.Zero(s.store.CountReviews(movie.ID))

	err = s.reviews.Delete(s.ctx, id)
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestReviewGetByMovie() {
	genre := s.seedGenre("Drama")
	heat := s.seedMovie("Heat", 1995, genre, nil)
	ronin := s.seedMovie("Ronin", 1998, genre, nil)
	s.seedReviews(heat, 3)
	s.seedReviews(ronin, 1)

	page, err := s.reviews.GetByMovie(s.ctx, heat.ID, request.PaginatedRequest{Page: 1, PageSize: 2})
	s.Require().NoError(err)
	s.Len(page.Data, 2)
	s.EqualValues(3, page.Pagination.TotalItemCount)
	s.Equal(2, page.Pagination.TotalPages)

	all, err := s.reviews.GetAll(s.ctx, request.PaginatedRequest{})
	s.Require().NoError(err)
	s.EqualValues(4, all.Pagination.TotalItemCount)
	s.Equal(1, all.Pagination.CurrentPage)
	s.Equal(10, all.Pagination.PageSize)

	_, err = s.reviews.GetByMovie(s.ctx, uuid.New(), request.PaginatedRequest{})
	s.requireKind(KindNotFound, err)
}
