package usecase

import (
	"strings"

	"movies-api/internal/data/repository/mock"
	"movies-api/internal/dto/request"

	"github.com/google/uuid"
)

func (s *ServiceTestSuite) TestGenreCreate() {
	genre, err := s.genres.Create(s.ctx, &request.GenreRequest{Name: "  Drama "})
	s.Require().NoError(err)
	s.Equal("Drama", genre.Name)
	s.Equal(1, genre.Version)

	got, err := s.genres.Get(s.ctx, uuid.MustParse(genre.ID))
	s.Require().NoError(err)
	s.Equal("Drama", got.Name)
}

func (s *ServiceTestSuite) TestGenreCreateDuplicateNameIgnoresCase() {
	_, err := s.genres.Create(s.ctx, &request.GenreRequest{Name: "Drama"})
	s.Require().NoError(err)

	_, err = s.genres.Create(s.ctx, &request.GenreRequest{Name: "drama"})
	s.requireKind(KindConflict, err)
}

func (s *ServiceTestSuite) TestGenreCreateUniqueIndexBackstop() {
	// A concurrent insert lands between the name check and the insert.
	s.store.BeforeWrite = func(table string, op mock.Op, _ uuid.UUID) {
		if table == mock.TableGenres && op == mock.OpCreate {
			s.store.BeforeWrite = nil
			s.seedGenre("COMEDY")
		}
	}

	_, err := s.genres.Create(s.ctx, &request.GenreRequest{Name: "Comedy"})
	s.requireKind(KindConflict, err)
}

func (s *ServiceTestSuite) TestGenreCreateValidation() {
	_, err := s.genres.Create(s.ctx, &request.GenreRequest{Name: ""})
	s.requireKind(KindValidation, err)

	_, err = s.genres.Create(s.ctx, &request.GenreRequest{Name: "   "})
	s.requireKind(KindValidation, err)

	_, err = s.genres.Create(s.ctx, &request.GenreRequest{Name: strings.Repeat("x", 51)})
	s.requireKind(KindValidation, err)
}

func (s *ServiceTestSuite) TestGenreNameLengthCountsTrimmedName() {
	name := strings.Repeat("n", 50)
	padded := "     " + name + "     "

	genre, err := s.genres.Create(s.ctx, &request.GenreRequest{Name: padded})
	s.Require().NoError(err)
	s.Equal(name, genre.Name)

	renamed := strings.Repeat("r", 50)
	s.Require().NoError(s.genres.Update(s.ctx, uuid.MustParse(genre.ID), &request.GenreRequest{Name: "  " + renamed + "  "}))

	got, err := s.genres.Get(s.ctx, uuid.MustParse(genre.ID))
	s.Require().NoError(err)
	s.Equal(renamed, got.Name)
}

func (s *ServiceTestSuite) TestGenreUpdate() {
	drama := s.seedGenre("Drama")
	s.seedGenre("Horror")

	s.Require().NoError(s.genres.Update(s.ctx, drama.ID, &request.GenreRequest{Name: "Period Drama"}))

	got, err := s.genres.Get(s.ctx, drama.ID)
	s.Require().NoError(err)
	s.Equal("Period Drama", got.Name)
	s.Equal(2, got.Version)

	// Renaming to its own name in a different case is allowed.
	s.Require().NoError(s.genres.Update(s.ctx, drama.ID, &request.GenreRequest{Name: "PERIOD DRAMA"}))

	err = s.genres.Update(s.ctx, drama.ID, &request.GenreRequest{Name: "horror"})
	s.requireKind(KindConflict, err)

	err = s.genres.Update(s.ctx, uuid.New(), &request.GenreRequest{Name: "Western"})
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestGenreUpdateStaleVersion() {
	drama := s.seedGenre("Drama")
	s.store.BumpVersion(mock.TableGenres, drama.ID)

	err := s.genres.Update(s.ctx, drama.ID, &request.GenreRequest{Name: "Dramas", Version: intPtr(1)})
	s.requireKind(KindConcurrencyConflict, err)
}

func (s *ServiceTestSuite) TestGenreDeleteCascades() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	s.seedReviews(movie, 2)

	s.Require().NoError(s.genres.Delete(s.ctx, genre.ID))

	_, err := s.movies.Get(s.ctx, movie.ID)
	s.requireKind(KindNotFound, err)
	s.Zero(s.store.CountReviews(movie.ID))

	err = s.genres.Delete(s.ctx, genre.ID)
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestGenreDeleteBlocksReviewsOnItsMovies() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)

	reviewErr := make(chan error, 1)
	s.store.BeforeWrite = func(table string, op mock.Op, _ uuid.UUID) {
		if table == mock.TableGenres && op == mock.OpDelete {
			go func() {
				_, err := s.reviews.Create(s.ctx, &request.CreateReviewRequest{
					MovieID:      movie.ID.String(),
					ReviewerName: "Roger",
					Comment:      "Too late",
					Rating:       3,
				})
				reviewErr <- err
			}()
		}
	}

	s.Require().NoError(s.genres.Delete(s.ctx, genre.ID))

	err := <-reviewErr
	s.requireKind(KindValidation, err)
	s.Zero(s.store.CountReviews(movie.ID))
}

func (s *ServiceTestSuite) TestGenreDeleteConcurrentlyRemoved() {
	genre := s.seedGenre("Drama")
	s.store.BeforeWrite = func(table string, op mock.Op, id uuid.UUID) {
		if table == mock.TableGenres && op == mock.OpDelete {
			s.store.DeleteRow(mock.TableGenres, id)
		}
	}

	err := s.genres.Delete(s.ctx, genre.ID)
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestGenreGetWithMovies() {
	genre := s.seedGenre("Drama")
	s.seedMovie("Zodiac", 2007, genre, nil)
	s.seedMovie("Amadeus", 1984, genre, nil)
	s.seedMovie("Alien", 1979, s.seedGenre("Horror"), nil)

	got, err := s.genres.GetWithMovies(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Movies, 2)
	s.Equal("Amadeus", got.Movies[0].Title)
	s.Equal("Zodiac", got.Movies[1].Title)
}

func (s *ServiceTestSuite) TestGenreGetAllPaginates() {
	for _, name := range []string{"Drama", "Comedy", "Action", "Horror", "Western"} {
		s.seedGenre(name)
	}

	page, err := s.genres.GetAll(s.ctx, request.PaginatedRequest{Page: 2, PageSize: 2})
	s.Require().NoError(err)
	s.Require().Len(page.Data, 2)
	s.Equal("Drama", page.Data[0].Name)
	s.Equal("Horror", page.Data[1].Name)
	s.Equal(int64(5), page.Pagination.TotalItemCount)
	s.Equal(3, page.Pagination.TotalPages)
	s.Equal(2, page.Pagination.CurrentPage)
	s.Equal(2, page.Pagination.PageSize)
}

func (s *ServiceTestSuite) TestGenreAny() {
	genre := s.seedGenre("Drama")

	ok, err := s.genres.Any(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.genres.Any(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.False(ok)
}

