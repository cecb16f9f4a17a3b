package sdk_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Voltaic314/ShelfDB/sdk"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
)

func ExampleShelfDBClient() {
	dir, err := os.MkdirTemp("", "shelfdb-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	ctx := context.Background()
	client, err := sdk.NewShelfDBClientWithDir(ctx, dir, "alice", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	shelf, err := client.AllocateObject(ctx, "shelf")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("allocated", shelf)

	id, err := client.InsertContent(ctx, shelf, dbTypes.NewContent{ObjectName: "Kitchen shelf", ItemName: "Coffee Cup", Count: 2.0})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("inserted row", id)

	matches, err := client.Search(ctx, "cup", "")
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range matches {
		fmt.Println("found in", m.TableName)
	}

	// Output:
	// allocated shelf_1
	// inserted row 1
	// found in shelf_1
}
