package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"time"
)

const baseURL = "http://localhost:8080"

var shops = []string{
	"https://www.asos.com/item/",
	"https://www.next.co.uk/style/",
	"https://www.marksandspencer.com/p/",
}

type registerRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Location    string `json:"location"`
}

type orderItem struct {
	URL      string `json:"url"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size,omitempty"`
}

type submitRequest struct {
	Items []orderItem `json:"items"`
}

func main() {
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatal(err)
	}
	client := &http.Client{Jar: jar}

	email := fmt.Sprintf("load-%d@example.com", time.Now().UnixNano())
	if err := register(client, email); err != nil {
		log.Fatal("регистрация не удалась: ", err)
	}
	fmt.Println("registered", email)

	for {
		if err := submitOrder(client); err != nil {
			fmt.Println("Ошибка запроса:", err)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func register(client *http.Client, email string) error {
	body := registerRequest{
		Email:       email,
		PhoneNumber: fmt.Sprintf("+371%08d", rand.Intn(100000000)),
		Password:    "load-test-pass",
		Location:    "Riga",
	}
	resp, err := postJSON(client, baseURL+"/auth/register", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

func submitOrder(client *http.Client) error {
	items := make([]orderItem, 0, 1+rand.Intn(3))
	for i := 0; i < cap(items); i++ {
		items = append(items, orderItem{
			URL:      shops[rand.Intn(len(shops))] + randomID(8),
			Quantity: 1 + rand.Intn(4),
			Size:     []string{"", "S", "M", "L"}[rand.Intn(4)],
		})
	}

	resp, err := postJSON(client, baseURL+"/orders", submitRequest{Items: items})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	fmt.Println("POST /orders ->", resp.Status)
	return nil
}

func postJSON(client *http.Client, url string, v any) (*http.Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return client.Do(req)
}

func randomID(length int) string {
	chars := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	id := make([]rune, length)
	for i := range id {
		id[i] = chars[rand.Intn(len(chars))]
	}
	return string(id)
}
