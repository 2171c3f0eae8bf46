// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
//   - Store: token bucket por chave usando golang.org/x/time/rate
//   - WindowTable: janela fixa em memória, LRU limitado (tinylru) + janitor
//   - RedisWindowStore: janela fixa compartilhada entre instâncias (script Lua)
//   - ChanPool: semáforo simples para limite de concorrência
//   - stats: memória, Redis, Prometheus e MultiStats
package infra
