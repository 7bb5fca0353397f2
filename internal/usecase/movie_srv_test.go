package usecase

import (
	"movies-api/internal/data/repository/mock"
	"movies-api/internal/dto/request"

	"github.com/google/uuid"
)

func (s *ServiceTestSuite) movieRequest(genreID uuid.UUID, budget *int) *request.MovieRequest {
	return &request.MovieRequest{
		Title:             "Planet Earth",
		Year:              2006,
		GenreID:           genreID.String(),
		DurationInMinutes: 550,
		Synopsis:          "The natural world",
		Language:          "English",
		Budget:            budget,
	}
}

func (s *ServiceTestSuite) TestMovieCreate() {
	genre := s.seedGenre("Drama")

	movie, err := s.movies.Create(s.ctx, s.movieRequest(genre.ID, intPtr(5_000_000)))
	s.Require().NoError(err)
	s.Equal("Planet Earth", movie.Title)
	s.Equal("Drama", movie.Genre)
	s.Equal(5_000_000, *movie.Budget)

	got, err := s.movies.Get(s.ctx, uuid.MustParse(movie.ID))
	s.Require().NoError(err)
	s.Equal("The natural world", got.Synopsis)
	s.Equal("Drama", got.Genre)
}

func (s *ServiceTestSuite) TestMovieCreateUnknownGenre() {
	_, err := s.movies.Create(s.ctx, s.movieRequest(uuid.New(), nil))
	s.requireKind(KindValidation, err)
	s.Contains(err.Error(), "invalid genre reference")
}

func (s *ServiceTestSuite) TestMovieCreateGenreDeletedConcurrently() {
	genre := s.seedGenre("Drama")
	s.store.BeforeWrite = func(table string, op mock.Op, _ uuid.UUID) {
		if table == mock.TableMovies && op == mock.OpCreate {
			s.store.DeleteRow(mock.TableGenres, genre.ID)
		}
	}

	_, err := s.movies.Create(s.ctx, s.movieRequest(genre.ID, nil))
	s.requireKind(KindValidation, err)
}

func (s *ServiceTestSuite) TestMovieCreateFieldValidation() {
	genre := s.seedGenre("Drama")
	req := s.movieRequest(genre.ID, nil)
	req.Title = ""
	req.Year = 1500

	_, err := s.movies.Create(s.ctx, req)
	s.requireKind(KindValidation, err)

	var svcErr *Error
	s.Require().ErrorAs(err, &svcErr)
	s.Contains(svcErr.Fields, "title")
	s.Contains(svcErr.Fields, "year")
}

func (s *ServiceTestSuite) TestMovieDocumentaryBudget() {
	documentary := s.seedGenre(" DocumentarY ")

	_, err := s.movies.Create(s.ctx, s.movieRequest(documentary.ID, intPtr(1_500_000)))
	s.requireKind(KindValidation, err)

	_, err = s.movies.Create(s.ctx, s.movieRequest(documentary.ID, intPtr(1_000_000)))
	s.Require().NoError(err)

	_, err = s.movies.Create(s.ctx, s.movieRequest(documentary.ID, intPtr(900_000)))
	s.Require().NoError(err)

	_, err = s.movies.Create(s.ctx, s.movieRequest(documentary.ID, nil))
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestMovieUpdate() {
	drama := s.seedGenre("Drama")
	comedy := s.seedGenre("Comedy")
	movie := s.seedMovie("Heat", 1995, drama, nil)

	req := s.movieRequest(comedy.ID, intPtr(10))
	req.Title = "Heat (Director's Cut)"
	s.Require().NoError(s.movies.Update(s.ctx, movie.ID, req))

	got, err := s.movies.Get(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.Equal("Heat (Director's Cut)", got.Title)
	s.Equal("Comedy", got.Genre)
	s.Equal(10, *got.Budget)
	s.Equal(2, got.Version)
}

func (s *ServiceTestSuite) TestMovieUpdateIntoDocumentaryOverBudget() {
	drama := s.seedGenre("Drama")
	documentary := s.seedGenre("Documentary")
	movie := s.seedMovie("Heat", 1995, drama, intPtr(60_000_000))

	err := s.movies.Update(s.ctx, movie.ID, s.movieRequest(documentary.ID, intPtr(60_000_000)))
	s.requireKind(KindValidation, err)

	got, err := s.movies.Get(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.Equal("Drama", got.Genre)
}

func (s *ServiceTestSuite) TestMovieUpdateNotFound() {
	genre := s.seedGenre("Drama")
	err := s.movies.Update(s.ctx, uuid.New(), s.movieRequest(genre.ID, nil))
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestMovieUpdateDeletedConcurrently() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	s.store.BeforeWrite = func(table string, op mock.Op, id uuid.UUID) {
		if table == mock.TableMovies && op == mock.OpUpdate {
			s.store.DeleteRow(mock.TableMovies, id)
		}
	}

	err := s.movies.Update(s.ctx, movie.ID, s.movieRequest(genre.ID, nil))
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestMovieUpdateModifiedConcurrently() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	s.store.BeforeWrite = func(table string, op mock.Op, id uuid.UUID) {
		if table == mock.TableMovies && op == mock.OpUpdate {
			s.store.BumpVersion(mock.TableMovies, id)
		}
	}

	err := s.movies.Update(s.ctx, movie.ID, s.movieRequest(genre.ID, nil))
	s.requireKind(KindConcurrencyConflict, err)
}

func (s *ServiceTestSuite) TestMovieUpdateStaleVersion() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	s.store.BumpVersion(mock.TableMovies, movie.ID)

	req := s.movieRequest(genre.ID, nil)
	req.Version = intPtr(1)
	err := s.movies.Update(s.ctx, movie.ID, req)
	s.requireKind(KindConcurrencyConflict, err)

	req.Version = intPtr(2)
	s.Require().NoError(s.movies.Update(s.ctx, movie.ID, req))
}

func (s *ServiceTestSuite) TestMovieGetUpdateRequest() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, intPtr(60_000_000))

	req, err := s.movies.GetUpdateRequest(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.Equal("Heat", req.Title)
	s.Equal(1995, req.Year)
	s.Equal(genre.ID.String(), req.GenreID)
	s.Equal("A synopsis", req.Synopsis)
	s.Equal(60_000_000, *req.Budget)
	s.Equal(1, *req.Version)

	_, err = s.movies.GetUpdateRequest(s.ctx, uuid.New())
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestMoviePatch() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, intPtr(500))

	patch := []byte(`[
		{"op": "replace", "path": "/title", "value": "Heat 2"},
		{"op": "replace", "path": "/budget", "value": 1000}
	]`)
	s.Require().NoError(s.movies.Patch(s.ctx, movie.ID, patch))

	got, err := s.movies.Get(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.Equal("Heat 2", got.Title)
	s.Equal(1995, got.Year)
	s.Equal(1000, *got.Budget)
}

func (s *ServiceTestSuite) TestMoviePatchErrors() {
	genre := s.seedGenre("Drama")
	documentary := s.seedGenre("Documentary")
	movie := s.seedMovie("Heat", 1995, genre, intPtr(5_000_000))

	err := s.movies.Patch(s.ctx, movie.ID, []byte(`{"not": "a patch"}`))
	s.requireKind(KindValidation, err)

	err = s.movies.Patch(s.ctx, movie.ID, []byte(`[{"op": "remove", "path": "/missing"}]`))
	s.requireKind(KindValidation, err)

	err = s.movies.Patch(s.ctx, movie.ID, []byte(`[{"op": "replace", "path": "/title", "value": ""}]`))
	s.requireKind(KindValidation, err)

	moveToDocumentary := []byte(`[{"op": "replace", "path": "/genreId", "value": "` + documentary.ID.String() + `"}]`)
	err = s.movies.Patch(s.ctx, movie.ID, moveToDocumentary)
	s.requireKind(KindValidation, err)

	err = s.movies.Patch(s.ctx, uuid.New(), []byte(`[{"op": "replace", "path": "/title", "value": "x"}]`))
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestMovieGetDetailed() {
	genre := s.seedGenre("Drama")
	heat := s.seedMovie("Heat", 1995, genre, nil)
	ronin := s.seedMovie("Ronin", 1998, genre, nil)
	deniro := s.seedActor("Robert", "De Niro")
	pacino := s.seedActor("Al", "Pacino")
	s.store.PutCast(heat.ID, deniro.ID, "Neil McCauley")
	s.store.PutCast(heat.ID, pacino.ID, "Vincent Hanna")
	s.store.PutCast(ronin.ID, deniro.ID, "Sam")
	s.seedReviews(heat, 2)

	got, err := s.movies.GetDetailed(s.ctx, heat.ID)
	s.Require().NoError(err)
	s.Equal("Drama", got.Genre)
	s.Require().Len(got.Actors, 2)
	s.Equal("Robert De Niro", got.Actors[0].FullName)
	s.Len(got.Actors[0].Movies, 2)
	s.Equal("Al Pacino", got.Actors[1].FullName)
	s.Len(got.Reviews, 2)
}

func (s *ServiceTestSuite) TestMovieDelete() {
	genre := s.seedGenre("Drama")
	movie := s.seedMovie("Heat", 1995, genre, nil)
	actor := s.seedActor("Al", "Pacino")
	s.store.PutCast(movie.ID, actor.ID, "Vincent Hanna")
	s.seedReviews(movie, 3)

	s.Require().NoError(s.movies.Delete(s.ctx, movie.ID))
	s.Zero(s.store.CountReviews(movie.ID))
	s.Zero(s.store.CountCast(movie.ID))

	ok, err := s.movies.Any(s.ctx, movie.ID)
	s.Require().NoError(err)
	s.False(ok)

	err = s.movies.Delete(s.ctx, movie.ID)
	s.requireKind(KindNotFound, err)
}

func (s *ServiceTestSuite) TestMovieDocumentaryHelpers() {
	documentary := s.seedGenre("documentary")
	drama := s.seedGenre("Drama")
	doc := s.seedMovie("Planet Earth", 2006, documentary, nil)
	heat := s.seedMovie("Heat", 1995, drama, nil)

	ok, err := s.movies.IsGenreIDDocumentary(s.ctx, documentary.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.movies.IsGenreIDDocumentary(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.movies.IsMovieDocumentary(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.movies.IsMovieDocumentary(s.ctx, heat.ID)
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.movies.IsDocumentaryBudgetLimitReached(s.ctx, documentary.ID, intPtr(1_000_001))
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.movies.IsDocumentaryBudgetLimitReached(s.ctx, drama.ID, intPtr(1_000_001))
	s.Require().NoError(err)
	s.False(ok)

	s.seedCast(doc, MaxDocumentaryActors-1)
	ok, err = s.movies.IsDocumentaryActorLimitReached(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.False(ok)

	s.seedCast(doc, 1)
	ok, err = s.movies.IsDocumentaryActorLimitReached(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.True(ok)

	s.seedCast(heat, MaxDocumentaryActors)
	ok, err = s.movies.IsDocumentaryActorLimitReached(s.ctx, heat.ID)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceTestSuite) TestMovieCreateBudgetPastColumnRange() {
	genre := s.seedGenre("Drama")

	_, err := s.movies.Create(s.ctx, s.movieRequest(genre.ID, intPtr(3_000_000_000)))
	s.requireKind(KindValidation, err)

	var svcErr *Error
	s.Require().ErrorAs(err, &svcErr)
	s.Contains(svcErr.Fields, "budget")
}
