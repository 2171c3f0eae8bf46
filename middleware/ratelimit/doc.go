// Package ratelimit fornece adapters HTTP (net/http) para rate limit e limite de concorrência.
//
// Camadas:
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: casos de uso (token bucket, janela fixa, acquire/timeout) sem net/http
//   - infra: implementações concretas (x/time/rate, LRU em memória, Redis, semáforo, stats)
//   - ratelimit (este pacote): middlewares HTTP + extração de chave + tradução para status/headers
//
// Fluxo no site:
//
//  1. Extrai a chave do cliente (header/XFF/RemoteAddr)
//  2. Chama a camada application para obter a decisão
//  3. Se bloqueado, responde 429 (rate limit) ou 503 (concorrência)
//  4. Se permitido, chama o próximo handler (rotas do site)
//
// O formulário de contato usa a mesma extração de chave, mas uma janela fixa
// própria (5 envios por hora por padrão), aplicada dentro do handler de contato.
package ratelimit
