// Command example demonstrates Grapefruit end to end: defining an entity
// via struct tags, registering its schema, building a filtered query with
// Wrapper, and driving it through the repository facade against a SQLite
// database file.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/grapefruit-orm/grapefruit/driverutil"
	"github.com/grapefruit-orm/grapefruit/idgen"
	"github.com/grapefruit-orm/grapefruit/repository"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// Article is a Grapefruit entity: the "id" field is the primary key with a
// generator-assigned value, "Deleted" is a logical-delete flag and
// "Version" backs optimistic-lock updates.
type Article struct {
	ID      *int64 `grapefruit:"id,name=id,id_type=generator"`
	Title   string `grapefruit:"column,name=title"`
	Body    string `grapefruit:"column,name=body,select=false"`
	Deleted bool   `grapefruit:"column,name=deleted,is_logic_delete"`
	Version int64  `grapefruit:"column,name=version,version"`
}

var Articles repository.BaseRepository[int64, Article]

// ArticleColumns is Article's derived column enumeration, built once at
// package init rather than hand-writing wrapper.Col("title") literals.
var ArticleColumns = schema.MustColumns[Article]()

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	gen, err := idgen.New(1, 1, logger)
	if err != nil {
		log.Fatalf("configure identifier generator: %v", err)
	}

	pool, err := driverutil.Open("sqlite://grapefruit_example.db", driverutil.PoolOptions{
		IdentifierGenerator: gen,
		Logger:              logger,
	})
	if err != nil {
		log.Fatalf("open pool: %v", err)
	}
	defer pool.Close()

	repo, err := repository.New[Article](pool)
	if err != nil {
		log.Fatalf("register Article schema: %v", err)
	}
	if err := repository.SetDefault(repo); err != nil {
		log.Fatalf("bind default repository: %v", err)
	}

	ctx := context.Background()

	a := &Article{Title: "Hello, Grapefruit", Body: "first post"}
	if _, err := Articles.Insert(ctx, a); err != nil {
		log.Fatalf("insert: %v", err)
	}
	fmt.Printf("inserted article id=%d\n", *a.ID)

	w := wrapper.New().Like(ArticleColumns["Title"], "Hello")
	page, err := Articles.PageByWrapper(ctx, w, 1, 10)
	if err != nil {
		log.Fatalf("page: %v", err)
	}
	fmt.Printf("page 1/%d of %d matching articles\n", page.Rows, page.Total)

	if _, err := Articles.DeleteByID(ctx, *a.ID); err != nil {
		log.Fatalf("delete: %v", err)
	}
	fmt.Println("deleted (logically) article", *a.ID)
}
