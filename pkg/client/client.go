// Package client реализует HTTP-клиент магазина, которым пользуется
// настольное приложение. Каждый экземпляр клиента при создании получает
// собственный performer-токен и прикладывает его ко всем вызовам.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"shop-service/internal/models"
)

const defaultTimeout = 15 * time.Second

// Client инкапсулирует HTTP-взаимодействия с сервером магазина
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	performerToken string
}

// Options позволяет переопределить зависимости клиента
type Options struct {
	HTTPClient     *http.Client
	PerformerToken string
}

// New создает новый клиент сервера магазина
func New(baseURL string, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	token := opts.PerformerToken
	if token == "" {
		token = uuid.New().String()
	}

	return &Client{
		baseURL:        parsed,
		httpClient:     httpClient,
		performerToken: token,
	}, nil
}

// PerformerToken возвращает токен, выданный этому клиенту при создании
func (c *Client) PerformerToken() string {
	return c.performerToken
}

// APIError описывает ошибку, возвращенную сервером
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Products возвращает список всех товаров
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var resp models.ProductListResponse
	if err := c.do(ctx, http.MethodGet, "/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Product возвращает один товар по id; сервер отдает все поля строками
func (c *Client) Product(ctx context.Context, id int64) (map[string]string, error) {
	resp := make(map[string]string)
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AddProduct добавляет новый товар. Требует прав администратора.
func (c *Client) AddProduct(ctx context.Context, product models.CreateProductRequest) error {
	return c.do(ctx, http.MethodPost, "/add_product", product, nil)
}

// RemoveProductByID удаляет товар по id. Требует прав администратора.
func (c *Client) RemoveProductByID(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/remove_product/%d", id), nil, nil)
}

// RemoveProductByName удаляет товар по точному имени. Требует прав администратора.
func (c *Client) RemoveProductByName(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/remove_product/"+name, nil, nil)
}

// Users возвращает список всех пользователей
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var resp models.UserListResponse
	if err := c.do(ctx, http.MethodGet, "/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, login, password, name, surname, age string) error {
	body := models.RegisterRequest{
		Login:    login,
		Password: password,
		Name:     name,
		Surname:  surname,
		Age:      age,
		Token:    c.performerToken,
	}
	return c.do(ctx, http.MethodPost, "/register", body, nil)
}

// Login входит под указанным логином. Токен сессии - performer-токен
// этого клиента.
func (c *Client) Login(ctx context.Context, login, password string) (*models.LoginResponse, error) {
	body := models.LoginRequest{
		Login:    login,
		Password: password,
		Token:    c.performerToken,
	}
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout завершает сессию логина
func (c *Client) Logout(ctx context.Context, login string) error {
	return c.do(ctx, http.MethodGet, "/logout/"+login, nil, nil)
}

// CheckToken сообщает, залогинен ли указанный логин
func (c *Client) CheckToken(ctx context.Context, login string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/check_token/"+login, nil, nil)
	if err != nil {
		var apiErr *APIError
		// 400 означает "не залогинен", остальное - настоящая ошибка
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveUser удаляет пользователя по логину. Требует прав администратора.
func (c *Client) RemoveUser(ctx context.Context, login string) error {
	return c.do(ctx, http.MethodPost, "/remuser/"+login, nil, nil)
}

// do выполняет запрос, прикладывая performer_token, и разбирает ответ.
// Не-2xx статусы превращаются в APIError с текстом из поля error.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	u := *c.baseURL
	u.Path = path
	q := u.Query()
	q.Set("performer_token", c.performerToken)
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.ErrorResponse
		message := string(data)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// FormatPrice форматирует цену из минорных единиц для отображения,
// например 1250 -> "12.50 zł". Это единственное место, где у цены
// появляется валюта.
func FormatPrice(minorUnits int64) string {
	return fmt.Sprintf("%d.%02d zł", minorUnits/100, minorUnits%100)
}
