package routes

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hoopboard/hoopboard/board"
	"github.com/hoopboard/hoopboard/config"
	"github.com/hoopboard/hoopboard/models"
	"github.com/hoopboard/hoopboard/render"
	"github.com/hoopboard/hoopboard/store"
	"github.com/hoopboard/hoopboard/utils"
)

// SetupRouter wires pages, the JSON API, and the live feed stream. feed is
// the process-wide feed page context; every other page context is created per
// request.
func SetupRouter(b *board.Board, feed *board.FeedController) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl))
		r.Use(utils.RecoveryWithZap(gl))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/lockerroom")
	})

	r.GET("/health", func(c *gin.Context) {
		utils.Success(c, gin.H{"status": "ok", "mode": b.Mode()})
	})

	r.GET("/lockerroom", func(c *gin.Context) {
		posts := feed.Refresh(c.Request.Context())
		htmlPage(c, http.StatusOK, render.FeedPage(posts, b.Identity(), time.Now()))
	})

	r.GET("/feed/stream", streamFeed(b))

	r.GET("/post", func(c *gin.Context) {
		htmlPage(c, http.StatusOK, render.ComposePage("", "", "", "", ""))
	})

	r.POST("/posts", func(c *gin.Context) {
		content := c.PostForm("content")
		position := c.PostForm("position")
		region := c.PostForm("region")
		division := c.PostForm("division")

		id, err := b.Compose().Submit(c.Request.Context(), content, position, region, division)
		if err != nil {
			status := http.StatusBadRequest
			if !isValidationError(err) {
				status = http.StatusInternalServerError
			}
			htmlPage(c, status, render.ComposePage(content, position, region, division, err.Error()))
			return
		}
		c.Redirect(http.StatusSeeOther, "/view-post?id="+id)
	})

	r.GET("/view-post", func(c *gin.Context) {
		v, err := openView(c, b)
		if err != nil {
			return
		}
		htmlPage(c, http.StatusOK, render.PostPage(v.Post(), v.Comments(), b.Identity(), time.Now(), ""))
	})

	r.GET("/view-post/stream", streamComments(b))

	r.POST("/posts/:id/comments", func(c *gin.Context) {
		v, err := openView(c, b)
		if err != nil {
			return
		}
		if _, err := v.AddComment(c.Request.Context(), c.PostForm("content")); err != nil {
			status := http.StatusBadRequest
			if !isValidationError(err) {
				status = http.StatusInternalServerError
			}
			htmlPage(c, status, render.PostPage(v.Post(), v.Comments(), b.Identity(), time.Now(), err.Error()))
			return
		}
		// Posting a comment navigates back to the feed.
		c.Redirect(http.StatusSeeOther, "/lockerroom")
	})

	r.POST("/posts/:id/like", func(c *gin.Context) {
		v, err := openView(c, b)
		if err != nil {
			return
		}
		state, err := v.ToggleLike(c.Request.Context())
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, 50001, "could not update like")
			return
		}
		utils.Success(c, gin.H{
			"liked":  state.Liked,
			"likes":  state.Likes,
			"button": render.LikeButton(v.Post()),
		})
	})

	r.POST("/posts/:id/delete", func(c *gin.Context) {
		v, err := openView(c, b)
		if err != nil {
			return
		}
		confirmed := c.PostForm("confirm") == "yes"
		if err := v.Delete(c.Request.Context(), confirmed); err != nil {
			switch {
			case errors.Is(err, board.ErrNotConfirmed):
				utils.Error(c, http.StatusBadRequest, 40001, err.Error())
			case errors.Is(err, store.ErrNotOwner):
				utils.Error(c, http.StatusForbidden, 40301, err.Error())
			default:
				utils.Error(c, http.StatusInternalServerError, 50002, "could not delete post")
			}
			return
		}
		c.Redirect(http.StatusSeeOther, "/lockerroom")
	})

	api := r.Group("/api/v1")
	api.GET("/posts", func(c *gin.Context) {
		posts := feed.Refresh(c.Request.Context())
		utils.Success(c, posts)
	})
	api.GET("/posts/:id", func(c *gin.Context) {
		v, err := b.Lookup(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.Error(c, http.StatusNotFound, 40401, "post not found")
			} else {
				utils.Error(c, http.StatusInternalServerError, 50003, "could not load post")
			}
			return
		}
		post := v.Post()
		post.Comments = v.Comments()
		utils.Success(c, post)
	})

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			utils.Error(c, http.StatusNotFound, 40400, "api route not found")
			return
		}
		htmlPage(c, http.StatusNotFound, render.NotFoundPage())
	})

	return r
}

// streamFeed serves one HTML feed fragment per emission over SSE. In snapshot
// mode a single fragment is sent and the stream ends.
func streamFeed(b *board.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		events := make(chan []models.Post, 1)
		push := func(posts []models.Post) {
			select {
			case <-events:
			default:
			}
			select {
			case events <- posts:
			default:
			}
		}

		f, err := b.Feed(c.Request.Context(), push)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, 50004, "could not open feed")
			return
		}
		defer f.Close()
		if !f.Live() {
			push(f.Posts())
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case posts := <-events:
				c.SSEvent("feed", render.Feed(posts, b.Identity(), time.Now()))
				return f.Live()
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}

// streamComments serves one comment-list fragment per emission over SSE for
// the single-post page. In snapshot mode a single fragment is sent and the
// stream ends.
func streamComments(b *board.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		events := make(chan []models.Comment, 1)
		push := func(comments []models.Comment) {
			select {
			case <-events:
			default:
			}
			select {
			case events <- comments:
			default:
			}
		}

		v, err := b.View(c.Request.Context(), c.Query("id"), push)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.Error(c, http.StatusNotFound, 40401, "post not found")
			} else {
				utils.Error(c, http.StatusInternalServerError, 50005, "could not open comment stream")
			}
			return
		}
		defer v.Close()
		push(v.Comments())

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case comments := <-events:
				c.SSEvent("comments", render.Comments(comments, time.Now()))
				return v.Live()
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}

// openView creates the single-post context from the request's id (path param
// or query) without a subscription, writing the not-found page itself on
// failure.
func openView(c *gin.Context, b *board.Board) (*board.PostController, error) {
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	v, err := b.Lookup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			htmlPage(c, http.StatusNotFound, render.NotFoundPage())
		} else {
			utils.Error(c, http.StatusInternalServerError, 50003, "could not load post")
		}
		return nil, err
	}
	return v, nil
}

func htmlPage(c *gin.Context, status int, body string) {
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

func isValidationError(err error) bool {
	return errors.Is(err, board.ErrMissingFields) ||
		errors.Is(err, board.ErrPostTooShort) ||
		errors.Is(err, board.ErrUnknownTag) ||
		errors.Is(err, board.ErrEmptyComment) ||
		errors.Is(err, board.ErrCommentTooShort)
}
